// Терминальный клиент к серверу user-manager: просмотр списка,
// создание, обновление и удаление пользователей с окном отмены
// для разрушительных операций.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/magabrotheeeer/user-manager/internal/client/api"
	"github.com/magabrotheeeer/user-manager/internal/client/hold"
	"github.com/magabrotheeeer/user-manager/internal/client/store"
	"github.com/magabrotheeeer/user-manager/internal/client/undo"
	"github.com/magabrotheeeer/user-manager/internal/lib/sl"
	"github.com/magabrotheeeer/user-manager/internal/models"
)

func main() {
	addr := flag.String("addr", "http://localhost:8080", "адрес сервера user-manager")
	window := flag.Duration("undo-window", undo.DefaultWindow, "окно отмены для удаления и обновления")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	client := api.New(*addr)
	state := store.New()
	coordinator := undo.New(
		undo.WithWindow(*window),
		undo.WithErrorHandler(func(kind undo.Kind, err error) {
			logger.Error("deferred commit failed", slog.String("kind", string(kind)), sl.Err(err))
			fmt.Printf("! %s failed: %v\n", kind, err)
		}),
	)

	app := &cli{client: client, state: state, coordinator: coordinator, logger: logger}
	app.run()
}

type cli struct {
	client      *api.Client
	state       *store.Store
	coordinator *undo.Coordinator
	logger      *slog.Logger
}

func (c *cli) run() {
	fmt.Println("userctl — команды: list, add, update <id>, delete <id>, undo, sort <column> [asc|desc], group <column>, quit")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "list":
			c.list()
		case "add":
			c.add(scanner)
		case "update":
			c.update(scanner, fields[1:])
		case "delete":
			c.remove(scanner, fields[1:])
		case "undo":
			c.coordinator.Undo(undo.KindDelete)
			c.coordinator.Undo(undo.KindUpdate)
			fmt.Println("pending operations cancelled")
		case "sort":
			c.sort(fields[1:])
		case "group":
			c.group(fields[1:])
		case "quit", "exit":
			return
		default:
			fmt.Printf("unknown command %q\n", fields[0])
		}
	}
}

func (c *cli) list() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c.state.Begin(store.OpFetch)
	users, err := c.client.Fetch(ctx, c.state.Params())
	if err != nil {
		c.state.Fail(store.OpFetch, err.Error())
		fmt.Printf("fetch failed: %v\n", err)
		return
	}
	c.state.SetUsers(users)

	for _, u := range users {
		active := "active"
		if !u.IsActive {
			active = "inactive"
		}
		fmt.Printf("%4d  %-20s %-30s %3d  %-15s %-10s %s\n",
			u.ID, u.Name, u.Email, u.Age, u.Country, u.Role, active)
	}
	fmt.Printf("%d user(s)\n", len(users))
}

func (c *cli) add(scanner *bufio.Scanner) {
	req := models.DummyUser{
		Name:    prompt(scanner, "name"),
		Email:   prompt(scanner, "email"),
		Country: prompt(scanner, "country"),
		Role:    prompt(scanner, "role"),
	}
	age, err := strconv.Atoi(prompt(scanner, "age"))
	if err != nil {
		fmt.Println("age must be a number")
		return
	}
	req.Age = age

	if errs := c.state.ValidateInsert(req); len(errs) > 0 {
		printFieldErrors(errs)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c.state.Begin(store.OpInsert)
	user, err := c.client.Insert(ctx, req)
	if err != nil {
		c.state.Fail(store.OpInsert, err.Error())
		printAPIError(err)
		return
	}
	c.state.ApplyInsert(user)
	fmt.Printf("created user %d\n", user.ID)
}

func (c *cli) update(scanner *bufio.Scanner, args []string) {
	id, ok := parseID(args)
	if !ok {
		return
	}

	fmt.Println("пустой ввод оставляет поле без изменений")
	var req models.DummyUpdate
	if v := prompt(scanner, "name"); v != "" {
		req.Name = &v
	}
	if v := prompt(scanner, "email"); v != "" {
		req.Email = &v
	}
	if v := prompt(scanner, "age"); v != "" {
		age, err := strconv.Atoi(v)
		if err != nil {
			fmt.Println("age must be a number")
			return
		}
		req.Age = &age
	}
	if v := prompt(scanner, "country"); v != "" {
		req.Country = &v
	}
	if v := prompt(scanner, "role"); v != "" {
		req.Role = &v
	}

	if req.IsEmpty() {
		fmt.Println("no fields to update")
		return
	}
	if errs := c.state.ValidateUpdate(req); len(errs) > 0 {
		printFieldErrors(errs)
		return
	}

	err := c.coordinator.Confirm(undo.KindUpdate, func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		c.state.Begin(store.OpUpdate)
		user, err := c.client.Update(ctx, id, req)
		if err != nil {
			c.state.Fail(store.OpUpdate, err.Error())
			return err
		}
		c.state.ApplyUpdate(user)
		return nil
	})
	if errors.Is(err, undo.ErrPending) {
		fmt.Println("another update is already pending, undo it first")
		return
	}
	fmt.Println("update scheduled, type 'undo' to cancel")
}

func (c *cli) remove(scanner *bufio.Scanner, args []string) {
	id, ok := parseID(args)
	if !ok {
		return
	}
	if !holdToConfirm(scanner) {
		fmt.Println("delete cancelled")
		return
	}

	err := c.coordinator.Confirm(undo.KindDelete, func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		c.state.Begin(store.OpDelete)
		deleted, message, err := c.client.Delete(ctx, id)
		if err != nil {
			c.state.Fail(store.OpDelete, err.Error())
			return err
		}
		c.state.ApplyDelete(deleted.ID)
		fmt.Println(message)
		return nil
	})
	if errors.Is(err, undo.ErrPending) {
		fmt.Println("another delete is already pending, undo it first")
		return
	}
	fmt.Println("delete scheduled, type 'undo' to cancel")
}

func (c *cli) sort(args []string) {
	if len(args) == 0 {
		fmt.Println("usage: sort <column> [asc|desc]")
		return
	}
	c.state.SetSortBy(args[0])
	if len(args) > 1 {
		c.state.SetSortDirection(args[1])
	}
	c.list()
}

func (c *cli) group(args []string) {
	if len(args) == 0 {
		fmt.Println("usage: group <column>")
		return
	}
	c.state.SetGroupBy(args[0])
	c.list()
}

// holdToConfirm заполняет шкалу удержания; нажатие Enter до заполнения
// отменяет удаление. После срабатывания ожидается ещё одно нажатие
// Enter, чтобы строка ввода не ушла в основной цикл.
func holdToConfirm(scanner *bufio.Scanner) bool {
	fired := make(chan struct{}, 1)
	gadget := hold.New(
		func() { fired <- struct{}{} },
		hold.WithProgress(func(progress float64) {
			fmt.Printf("\rconfirming delete: %3.0f%%", progress)
		}),
	)

	fmt.Println("press Enter to cancel while the bar fills")
	gadget.Start()

	line := make(chan struct{}, 1)
	go func() {
		if scanner.Scan() {
			line <- struct{}{}
		}
	}()

	select {
	case <-fired:
		fmt.Println("\nconfirmed, press Enter to continue")
		<-line
		return true
	case <-line:
		gadget.End()
		fmt.Println()
		return false
	}
}

func parseID(args []string) (int, bool) {
	if len(args) == 0 {
		fmt.Println("user id is required")
		return 0, false
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id < 1 {
		fmt.Println("invalid user id")
		return 0, false
	}
	return id, true
}

func prompt(scanner *bufio.Scanner, field string) string {
	fmt.Printf("%s: ", field)
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}

func printFieldErrors(errs map[string]string) {
	for field, message := range errs {
		fmt.Printf("  %s: %s\n", field, message)
	}
}

func printAPIError(err error) {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		fmt.Println(apiErr.Message)
		printFieldErrors(apiErr.FieldErrors)
		return
	}
	fmt.Println(err)
}
