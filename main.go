package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/augur/internal/augur/cmd"
)

func main() {
	// stdout belongs to the chess GUI, so everything else goes to stderr
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		PadLevelText:     true,
	})
	logrus.SetLevel(logrus.InfoLevel)

	if err := augur(); err != nil {
		logrus.Fatal(err)
	}
}

func augur() error {
	root := cmd.Root()
	root.SetArgs(os.Args[1:])
	return root.ExecuteContext(context.Background())
}
