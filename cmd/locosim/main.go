package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kong"
	"github.com/milk9111/fpcontroller/prefabs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var CLI struct {
	Debug bool `help:"Enable debug logging, including every mode transition."`

	Run struct {
		Course  string        `help:"Course under prefabs/courses." default:"wall"`
		Script  string        `help:"Input script under prefabs/scripts." default:"climb_wall"`
		Seconds float64       `help:"Simulated time in seconds." default:"6"`
		FPS     float64       `help:"Rendered frames per simulated second." default:"60"`
		Step    time.Duration `help:"Fixed physics step." default:"20ms"`
		Tuning  string        `help:"Controller tuning file under prefabs/." default:"controller.yaml"`
		Watch   bool          `help:"Run in real time and reload tuning when prefab files change."`
	} `cmd:"" default:"withargs" help:"Drive a scripted character through a course."`

	List struct{} `cmd:"" help:"List the embedded courses and scripts."`

	Defaults struct{} `cmd:"" help:"Write the stock controller tuning to standard output."`
}

func writeError(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

func main() {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
	log.Logger = log.Output(consoleWriter)
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	ctx := kong.Parse(&CLI,
		kong.Name("locosim"),
		kong.Description("headless first-person locomotion simulator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	if CLI.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Debug().Msg("debug logging enabled")
	}

	switch ctx.Command() {
	case "run":
		sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		cfg := simConfig{
			Course:  CLI.Run.Course,
			Script:  CLI.Run.Script,
			Tuning:  CLI.Run.Tuning,
			Seconds: CLI.Run.Seconds,
			FPS:     CLI.Run.FPS,
			Step:    CLI.Run.Step.Seconds(),
			Watch:   CLI.Run.Watch,
		}
		res, err := simulate(sigCtx, cfg, log.Logger)
		if err != nil {
			writeError(err)
		}
		printResult(os.Stdout, cfg, res)
	case "list":
		if err := listPrefabs(); err != nil {
			writeError(err)
		}
	case "defaults":
		data, err := prefabs.LoadEmbedded("controller.yaml")
		if err != nil {
			writeError(err)
		}
		os.Stdout.Write(data)
	}
}

func listPrefabs() error {
	courses, err := prefabs.Names(prefabs.ChangeCourse)
	if err != nil {
		return err
	}
	for _, name := range courses {
		spec, err := prefabs.LoadCourseSpec(name)
		if err != nil {
			return err
		}
		fmt.Printf("course  %-12s %s\n", name, spec.Description)
	}
	scripts, err := prefabs.Names(prefabs.ChangeScript)
	if err != nil {
		return err
	}
	for _, name := range scripts {
		fmt.Printf("script  %s\n", name)
	}
	return nil
}
