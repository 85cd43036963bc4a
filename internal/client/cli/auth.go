package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/recipebook/internal/common"
	"github.com/dmitrijs2005/recipebook/internal/models"
)

// The interactive input helpers are reached through these vars so tests can
// swap them.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var getLines = GetLines

// toastResult shows a success toast or the Result's error message.
func toastResult[T any](a *App, res models.Result[T], success string) bool {
	if res.Success {
		a.toast.Success(success, "")
		return true
	}
	a.toast.Danger("Ошибка", res.Error)
	return false
}

// Register prompts for an email, a password and its confirmation and
// creates the account. It does not sign in.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	confirm, err := getPassword(a.out, "Confirm password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	res := a.session.Register(ctx, email, string(password), string(confirm))
	if toastResult(a, res, "Регистрация прошла успешно") {
		fmt.Fprintln(a.out, "Now sign in with 'login'")
	}
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res := a.session.SignIn(ctx, email, string(password))
	toastResult(a, res, "Вы вошли в систему")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	res := a.session.SignOut(ctx)
	toastResult(a, res, "Вы вышли из системы")
	return nil
}
