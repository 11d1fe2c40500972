// Package bot assembles the MaxExpress Telegram bot: it adapts Telebot
// updates into dialog events and the service layer into the flow interfaces.
package bot

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	coreconfig "github.com/maxexpress/maxbot/core/config"
	"github.com/maxexpress/maxbot/core/telegram"
	"github.com/maxexpress/maxbot/dialog"
	"github.com/maxexpress/maxbot/service/parcels"
	"github.com/maxexpress/maxbot/service/users"
)

// App is the fully wired bot application.
type App struct {
	cfg       *coreconfig.Config
	router    *dialog.Router
	messenger *telebotMessenger
}

// New wires the dialog flows with their persistence and vendor backends.
func New(cfg *coreconfig.Config, db *sqlx.DB) *App {
	messenger := &telebotMessenger{}

	tutorials := make([]dialog.Tutorial, len(cfg.Tutorials))
	for i, t := range cfg.Tutorials {
		tutorials[i] = dialog.Tutorial{Key: t.Key, Title: t.Title, Text: t.Text}
	}

	router := dialog.NewRouter(
		dialog.NewSessions(),
		accountsAdapter{repo: users.NewRepository(db)},
		parcels.NewChecker(cfg.Vendor.BaseURL, time.Duration(cfg.Vendor.TimeoutSeconds)*time.Second),
		messenger,
		dialog.Config{
			Tutorials: tutorials,
			Address:   cfg.Contacts.Address,
			Support:   cfg.Contacts.Support,
		},
	)

	return &App{cfg: cfg, router: router, messenger: messenger}
}

// Run starts the bot and blocks until the context is cancelled.
func (a *App) Run(ctx context.Context) error {
	return telegram.RunTelegram(ctx, telegram.RunOptions{
		Config:      a.cfg,
		Middlewares: telegram.DefaultMiddlewares(a.cfg, nil),
		Routes:      a.routes(),
		OnStart: func(_ context.Context, rt telegram.Runtime) error {
			a.messenger.bind(rt.Bot)
			return nil
		},
	})
}

// accountsAdapter exposes the users repository through the flow-facing
// Accounts interface.
type accountsAdapter struct {
	repo *users.Repository
}

func (a accountsAdapter) Create(ctx context.Context, reg dialog.Registration) (dialog.Account, error) {
	u, err := a.repo.Create(ctx, users.NewUser{
		FirstName:   reg.FirstName,
		LastName:    reg.LastName,
		PhoneNumber: reg.PhoneNumber,
		TelegramID:  reg.TelegramID,
	})
	if err != nil {
		return dialog.Account{}, err
	}
	return toAccount(u), nil
}

func (a accountsAdapter) Find(ctx context.Context, telegramID int64) (dialog.Account, error) {
	u, err := a.repo.ByTelegramID(ctx, telegramID)
	if err != nil {
		return dialog.Account{}, err
	}
	return toAccount(u), nil
}

func (a accountsAdapter) Exists(ctx context.Context, telegramID int64) (bool, error) {
	return a.repo.Exists(ctx, telegramID)
}

func toAccount(u users.User) dialog.Account {
	return dialog.Account{
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		PhoneNumber: u.PhoneNumber,
		ClientCode:  u.ClientCode,
	}
}
