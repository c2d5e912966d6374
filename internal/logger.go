package internal

import (
	"hppgate/entity"
	"hppgate/services"
	"time"

	"github.com/sirupsen/logrus"
)

type Importance string

const (
	Info    Importance = " "
	Warning Importance = "?"
	Error   Importance = "!"
)

// Logger writes to stderr through logrus and, when a database is set,
// persists everything above debug level.
type Logger struct {
	category string
	entry    *logrus.Entry
	database services.Database
}

func NewLogger(category string, debug bool, database services.Database) *Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if debug {
		log.SetLevel(logrus.DebugLevel)
	}
	return &Logger{
		category: category,
		entry:    log.WithField("category", category),
		database: database,
	}
}

func (l *Logger) Debug(text string) {
	l.entry.Debug(text)
}

func (l *Logger) Info(text string) {
	l.entry.Info(text)
	l.persist(Info, text)
}

func (l *Logger) Warn(text string) {
	l.entry.Warn(text)
	l.persist(Warning, text)
}

func (l *Logger) Error(text string, err error) {
	l.entry.WithError(err).Error(text)
	if err != nil {
		text = text + ": " + err.Error()
	}
	l.persist(Error, text)
}

func (l *Logger) persist(importance Importance, text string) {
	if l.database == nil {
		return
	}
	message := &entity.LogMessage{
		Time:       time.Now().UTC(),
		Category:   l.category,
		Importance: string(importance),
		Text:       text,
	}
	if err := l.database.WriteLogMessage(message); err != nil {
		l.entry.WithError(err).Warn("write log to database failed")
	}
}
