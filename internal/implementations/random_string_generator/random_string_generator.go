package randomstringgenerator

import (
	"math/rand"
	"remindbot/internal/core/domain/reminder"
	"sync"
	"time"
)

type Generator struct {
	chars []rune
	rnd   *rand.Rand
	lock  sync.Mutex
}

func NewGenerator() *Generator {
	return &Generator{
		chars: []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"),
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (g *Generator) GenerateReminderID() reminder.ID {
	return reminder.ID(g.generate(reminder.ID_LENGTH))
}

func (g *Generator) generate(n int) string {
	g.lock.Lock()
	defer g.lock.Unlock()
	b := make([]rune, n)
	for i := range b {
		b[i] = g.chars[g.rnd.Intn(len(g.chars))]
	}
	return string(b)
}
