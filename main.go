package main

import (
	"io"
	"log"
	"os"
)

// setupLogger настраивает вывод логов в файл и в stderr
func setupLogger(path string) *os.File {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		log.Fatalf("Ошибка настройки логгера (%s): %v", path, err)
	}
	log.SetOutput(io.MultiWriter(os.Stderr, file))
	return file
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
