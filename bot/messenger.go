package bot

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync/atomic"

	tele "gopkg.in/telebot.v4"

	"github.com/maxexpress/maxbot/core/telegram/keyboard"
	"github.com/maxexpress/maxbot/dialog"
)

// telebotMessenger delivers flow output through the live Telebot instance.
// The bot is bound once on startup; the zero value fails every call until
// then.
type telebotMessenger struct {
	bot atomic.Pointer[tele.Bot]
}

var errNotBound = errors.New("bot: messenger used before startup")

func (m *telebotMessenger) bind(b *tele.Bot) {
	m.bot.Store(b)
}

func (m *telebotMessenger) Send(_ context.Context, conversation int64, text string, kb dialog.Keyboard) (dialog.MessageRef, error) {
	b := m.bot.Load()
	if b == nil {
		return dialog.MessageRef{}, errNotBound
	}

	var opts []any
	if markup := toMarkup(kb); markup != nil {
		opts = append(opts, markup)
	}
	msg, err := b.Send(tele.ChatID(conversation), text, opts...)
	if err != nil {
		return dialog.MessageRef{}, err
	}
	return dialog.MessageRef{ChatID: msg.Chat.ID, MessageID: msg.ID}, nil
}

func (m *telebotMessenger) Edit(_ context.Context, ref dialog.MessageRef, text string, kb dialog.Keyboard) error {
	b := m.bot.Load()
	if b == nil {
		return errNotBound
	}

	stored := tele.StoredMessage{
		MessageID: strconv.Itoa(ref.MessageID),
		ChatID:    ref.ChatID,
	}
	var opts []any
	if markup := toMarkup(kb); markup != nil {
		opts = append(opts, markup)
	}
	_, err := b.Edit(stored, text, opts...)
	if isSameContent(err) {
		// an edit to identical text and markup is a no-op, not a failure
		return nil
	}
	return err
}

func isSameContent(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, tele.ErrSameMessageContent) {
		return true
	}
	return strings.Contains(err.Error(), "message is not modified")
}

func toMarkup(kb dialog.Keyboard) *tele.ReplyMarkup {
	if len(kb) == 0 {
		return nil
	}
	rows := make([][]keyboard.InlineBtn, len(kb))
	for i, row := range kb {
		r := make([]keyboard.InlineBtn, len(row))
		for j, btn := range row {
			r[j] = keyboard.InlineBtn{Text: btn.Label, Unique: btn.Action, Data: btn.Data}
		}
		rows[i] = r
	}
	return keyboard.InlineButtonsRows(rows...)
}
