package logger

import (
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"
)

type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

type Logger struct {
	min Level
	std *log.Logger
}

func New() *Logger {
	min := INFO
	if os.Getenv("LOG_DEBUG") != "" {
		min = DEBUG
	}
	return &Logger{min: min, std: log.New(os.Stdout, "", log.LstdFlags)}
}

var (
	tagDebug = color.New(color.FgCyan).SprintFunc()
	tagInfo  = color.New(color.FgGreen).SprintFunc()
	tagWarn  = color.New(color.FgYellow).SprintFunc()
	tagError = color.New(color.FgRed, color.Bold).SprintFunc()
)

func (l *Logger) print(lv Level, badge func(...any) string, tag, msg string) {
	if lv < l.min {
		return
	}
	l.std.Printf("%s %s", badge("["+tag+"]"), msg)
}

func (l *Logger) Debug(tag, msg string) { l.print(DEBUG, tagDebug, tag, msg) }
func (l *Logger) Info(tag, msg string)  { l.print(INFO, tagInfo, tag, msg) }
func (l *Logger) Warn(tag, msg string)  { l.print(WARN, tagWarn, tag, msg) }
func (l *Logger) Error(tag, msg string) { l.print(ERROR, tagError, tag, msg) }

// LogPayment สำหรับ audit trail ฝั่ง payment โดยเฉพาะ
func (l *Logger) LogPayment(action, id, msg string) {
	l.Info("PAYMENT", fmt.Sprintf("%s %s - %s", action, id, msg))
}
