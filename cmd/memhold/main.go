package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"code.cloudfoundry.org/memhold/idle"
	"code.cloudfoundry.org/memhold/memory"
	"code.cloudfoundry.org/memhold/size"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

const undefinedFlagPrefix = "flag provided but not defined: "

var dashNumber = regexp.MustCompile(`^-[0-9]`)

const usage = `reserve and hold a block of memory

memhold allocates the requested amount of memory, writes to every byte so the
operating system has to back it with physical pages, and then keeps running
until it is killed.`

func main() {
	app := cli.NewApp()
	app.Name = "memhold"
	app.Usage = usage
	app.ArgsUsage = "<size>"
	app.HideHelp = true
	app.HideVersion = true
	app.Writer = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "debug",
			Usage: "log at debug level",
		},
		cli.StringFlag{
			Name:  "log",
			Value: os.DevNull,
			Usage: "file that receives memhold's internal log",
		},
		cli.StringFlag{
			Name:  "log-format",
			Value: "json",
			Usage: "log format, 'json' (default) or 'text'",
		},
	}

	// Nothing is logged until --log has been read.
	logrus.SetOutput(io.Discard)

	app.Before = configureLogging
	app.OnUsageError = rejectFlag

	app.Action = func(context *cli.Context) error {
		if err := checkArgs(context, 1); err != nil {
			return err
		}

		sizeStr := context.Args().First()
		logger := logrus.WithField("size", sizeStr)

		n, err := size.Parse(sizeStr)
		if err != nil {
			return &UnparseableSizeError{Size: sizeStr, Err: err}
		}

		if n == 0 {
			return &memory.ZeroSizeError{}
		}

		region, err := allocate(logger, n)
		if err != nil {
			return err
		}

		fmt.Println("memory is allocated, the process will keep running.")
		fmt.Println("press Ctrl+C or use kill to terminate the process.")
		logger.WithField("bytes", region.Len()).Info("holding memory")

		return hold(region)
	}

	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}

func allocate(logger *logrus.Entry, n uint64) (*memory.Region, error) {
	fmt.Printf("attempting to allocate %d bytes (%s)...\n", n, size.Human(n))

	region, err := memory.NewAllocator(logger).Reserve(n)
	if err != nil {
		return nil, &AllocationError{Requested: n, Err: err, Hint: memory.Hint(err)}
	}

	region.Commit()

	if err := region.Verify(n); err != nil {
		return nil, err
	}

	fmt.Printf("successfully allocated and initialized %d bytes (%s).\n", region.Len(), size.Human(region.Len()))
	return region, nil
}

// hold never returns: the region stays mapped until the process is killed
// and the operating system reclaims it.
func hold(region *memory.Region) error {
	err := idle.Park(context.Background())
	runtime.KeepAlive(region)
	return err
}

func checkArgs(context *cli.Context, expected int) error {
	if context.NArg() != expected {
		return &UsageError{Program: programName(), Got: context.NArg()}
	}
	return nil
}

// rejectFlag handles arguments the flag parser refused. A negative or
// otherwise dash-prefixed number is reported as a size that cannot be parsed.
func rejectFlag(context *cli.Context, err error, _ bool) error {
	arg := strings.TrimPrefix(err.Error(), undefinedFlagPrefix)
	if arg != err.Error() && dashNumber.MatchString(arg) {
		return &UnparseableSizeError{Size: arg, Err: err}
	}
	return &UsageError{Program: programName(), Reason: err.Error()}
}

func programName() string {
	return filepath.Base(os.Args[0])
}

func fatal(err error) {
	logrus.Error(err)
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
