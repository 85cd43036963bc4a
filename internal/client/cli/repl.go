package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App satisfies it;
// tests provide a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error

	Ingredients(ctx context.Context) error
	Search(ctx context.Context, term string) error
	AddIngredient(ctx context.Context) error
	DeleteIngredient(ctx context.Context, ref string) error

	Recipes(ctx context.Context) error
	ShowRecipe(ctx context.Context, ref string) error
	AddRecipe(ctx context.Context) error
	EditRecipe(ctx context.Context, ref string) error
	DeleteRecipe(ctx context.Context, ref string) error
	Upload(ctx context.Context, path string) error
}

const (
	helpGuest = "Available commands: register, login, ingredients, search <text>, recipes, recipe <n>, exit"
	helpUser  = "Available commands: ingredients, search <text>, addingredient, delingredient <n>, " +
		"recipes, recipe <n>, addrecipe, editrecipe <n>, delrecipe <n>, upload [file], logout, exit"
)

// runREPL reads commands from scanner and dispatches them to a until EOF,
// "exit" or "quit". Commands taking a reference accept the row number shown
// by the last listing or an id. Handler errors are not fatal to the loop.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("rb %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]
		arg := strings.Join(args, " ")

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpUser)
			} else {
				printlnFn(helpGuest)
			}

		case "register":
			err = a.Register(ctx)
		case "login":
			err = a.Login(ctx)
		case "logout":
			err = a.Logout(ctx)

		case "i", "ingredients":
			err = a.Ingredients(ctx)
		case "search":
			err = a.Search(ctx, arg)
		case "addingredient":
			err = a.AddIngredient(ctx)
		case "delingredient":
			if arg == "" {
				printlnFn("Usage: delingredient <n>")
				continue
			}
			err = a.DeleteIngredient(ctx, arg)

		case "r", "recipes":
			err = a.Recipes(ctx)
		case "recipe":
			if arg == "" {
				printlnFn("Usage: recipe <n>")
				continue
			}
			err = a.ShowRecipe(ctx, arg)
		case "addrecipe":
			err = a.AddRecipe(ctx)
		case "editrecipe":
			if arg == "" {
				printlnFn("Usage: editrecipe <n>")
				continue
			}
			err = a.EditRecipe(ctx, arg)
		case "delrecipe":
			if arg == "" {
				printlnFn("Usage: delrecipe <n>")
				continue
			}
			err = a.DeleteRecipe(ctx, arg)
		case "upload":
			err = a.Upload(ctx, arg)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err.Error())
		}
	}
}
