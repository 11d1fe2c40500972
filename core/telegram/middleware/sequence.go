package middleware

import (
	"sync"

	tele "gopkg.in/telebot.v4"
)

// SequenceMiddleware serializes update handling per chat. Handlers read and
// write conversation state without their own locking, relying on updates for
// one chat never running concurrently. Distinct chats still proceed in
// parallel.
func SequenceMiddleware() tele.MiddlewareFunc {
	var (
		mu    sync.Mutex
		locks = make(map[int64]*chatLock)
	)

	acquire := func(chatID int64) *chatLock {
		mu.Lock()
		defer mu.Unlock()
		l, ok := locks[chatID]
		if !ok {
			l = &chatLock{}
			locks[chatID] = l
		}
		l.waiters++
		return l
	}

	release := func(chatID int64, l *chatLock) {
		mu.Lock()
		defer mu.Unlock()
		l.waiters--
		if l.waiters == 0 {
			delete(locks, chatID)
		}
	}

	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			chat := c.Chat()
			if chat == nil {
				return next(c)
			}

			l := acquire(chat.ID)
			l.mu.Lock()
			defer func() {
				l.mu.Unlock()
				release(chat.ID, l)
			}()
			return next(c)
		}
	}
}

// chatLock pairs the per-chat mutex with a waiter count so idle entries can
// be dropped from the map.
type chatLock struct {
	mu      sync.Mutex
	waiters int
}
