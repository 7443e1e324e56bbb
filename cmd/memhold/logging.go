package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

func configureLogging(context *cli.Context) error {
	if context.GlobalBool("debug") {
		logrus.SetLevel(logrus.DebugLevel)
	}

	switch format := context.GlobalString("log-format"); format {
	case "text":
		logrus.SetFormatter(&logrus.TextFormatter{DisableColors: true})
	case "json":
		logrus.SetFormatter(new(logrus.JSONFormatter))
	default:
		return &InvalidLogFormatError{Format: format}
	}

	w, err := logWriter(context.GlobalString("log"))
	if err != nil {
		return err
	}
	logrus.SetOutput(w)

	return nil
}

func logWriter(path string) (io.Writer, error) {
	if path == "" || path == os.DevNull {
		return io.Discard, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND|os.O_SYNC, 0644)
}
