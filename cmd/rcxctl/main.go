// Command rcxctl is a small CLI front end over the rcx module: ping a
// brick, read its battery, or inspect a downloaded image/disassembly
// offline.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/bricks-rs/rcx"
	"github.com/bricks-rs/rcx/disasm"
	"github.com/bricks-rs/rcx/image"
	"github.com/bricks-rs/rcx/rcxerr"
)

func exitCodeFor(err error) int {
	if rcxerr.Is(err, rcxerr.KindParse) {
		return 2
	}
	return 1
}

func main() {
	app := cli.NewApp()
	app.Name = "rcxctl"
	app.Usage = "control and inspect LEGO Mindstorms RCX bricks and images"
	app.Commands = []cli.Command{
		{
			Name:      "alive",
			Usage:     "check that a brick responds",
			ArgsUsage: "<device>",
			Action:    cmdAlive,
		},
		{
			Name:      "battery",
			Usage:     "read a brick's battery voltage",
			ArgsUsage: "<device>",
			Action:    cmdBattery,
		},
		{
			Name:      "image",
			Usage:     "parse and print an RCX image file",
			ArgsUsage: "<file>",
			Action:    cmdImage,
		},
		{
			Name:      "disasm",
			Usage:     "disassemble an RCX image file",
			ArgsUsage: "<file>",
			Flags: []cli.Flag{
				cli.IntFlag{Name: "section", Usage: "disassemble only this section number"},
				cli.StringFlag{Name: "type", Usage: `disassemble only sections of this type ("task" or "sub")`},
			},
			Action: cmdDisasm,
		},
	}

	if err := app.Run(os.Args); err != nil {
		if ee, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, ee.Error())
			os.Exit(ee.ExitCode())
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func requireArg(c *cli.Context, usage string) (string, error) {
	if c.NArg() != 1 {
		return "", cli.NewExitError(usage, 3)
	}
	return c.Args().Get(0), nil
}

func cmdAlive(c *cli.Context) error {
	dev, err := requireArg(c, "usage: rcxctl alive <device>")
	if err != nil {
		return err
	}
	b, err := rcx.Open(dev, nil)
	if err != nil {
		return cli.NewExitError(err.Error(), exitCodeFor(err))
	}
	defer b.Close()

	if err := b.Alive(); err != nil {
		return cli.NewExitError(err.Error(), exitCodeFor(err))
	}
	fmt.Println("alive")
	return nil
}

func cmdBattery(c *cli.Context) error {
	dev, err := requireArg(c, "usage: rcxctl battery <device>")
	if err != nil {
		return err
	}
	b, err := rcx.Open(dev, nil)
	if err != nil {
		return cli.NewExitError(err.Error(), exitCodeFor(err))
	}
	defer b.Close()

	mv, err := b.GetBatteryPower()
	if err != nil {
		return cli.NewExitError(err.Error(), exitCodeFor(err))
	}
	fmt.Printf("%d mV\n", mv)
	return nil
}

func cmdImage(c *cli.Context) error {
	path, err := requireArg(c, "usage: rcxctl image <file>")
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	img, err := image.Parse(data)
	if err != nil {
		return cli.NewExitError(err.Error(), exitCodeFor(err))
	}
	fmt.Print(img.String())
	return nil
}

func cmdDisasm(c *cli.Context) error {
	path, err := requireArg(c, "usage: rcxctl disasm <file> [--section N] [--type task|sub]")
	if err != nil {
		return err
	}

	var filter disasm.SectionFilter
	if c.IsSet("section") {
		n := c.Int("section")
		if n < 0 || n > 255 {
			return cli.NewExitError("--section must be in 0..=255", 3)
		}
		filter.Number = uint8(n)
		filter.HasNumber = true
	}
	if c.IsSet("type") {
		switch c.String("type") {
		case "task":
			filter.Type = image.SectionTask
		case "sub":
			filter.Type = image.SectionSubroutine
		default:
			return cli.NewExitError(`--type must be "task" or "sub"`, 3)
		}
		filter.HasType = true
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	img, err := image.Parse(data)
	if err != nil {
		return cli.NewExitError(err.Error(), exitCodeFor(err))
	}
	log := logrus.WithField("component", "disasm")
	fmt.Print(disasm.Print(path, img, filter, log))
	return nil
}
