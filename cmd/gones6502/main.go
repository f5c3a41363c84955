// Package main implements the gones6502 command-line front end: load an
// iNES ROM, run it on the CPU core until it halts or hits an instruction
// budget, print the parsed cartridge header, or view its CHR pattern
// tables.
package main

import (
	"fmt"
	"log"
	"os"
	"sort"

	"gopkg.in/urfave/cli.v2"

	"github.com/claude/gones6502/internal/bus"
	"github.com/claude/gones6502/internal/cartridge"
	"github.com/claude/gones6502/internal/chrview"
	"github.com/claude/gones6502/internal/config"
	"github.com/claude/gones6502/internal/cpu"
	"github.com/claude/gones6502/internal/trace"
	"github.com/claude/gones6502/internal/version"
)

func main() {
	app := &cli.App{
		Name:    "gones6502",
		Usage:   "MOS 6502/NES core: run iNES ROMs, inspect cartridges, view CHR tiles",
		Version: version.GetVersion(),
		Commands: []*cli.Command{
			runCommand(),
			infoCommand(),
			viewCommand(),
			versionCommand(),
		},
	}
	sort.Sort(cli.CommandsByName(app.Commands))

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("gones6502: %v", err)
	}
}

func runCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "step the CPU until BRK, an illegal halt, or an instruction budget is hit",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "rom", Aliases: []string{"r"}, Usage: "path to an iNES ROM (required)"},
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "path to a JSON config file"},
			&cli.BoolFlag{Name: "decimal", Usage: "enable BCD semantics for ADC/SBC (off by default, matching the 2A03)"},
			&cli.BoolFlag{Name: "strict-ppu", Usage: "fail on PPU DATA access to the undefined $3000-$3EFF window"},
			&cli.Uint64Flag{Name: "limit", Aliases: []string{"l"}, Usage: "instruction budget; 0 means unbounded"},
			&cli.StringFlag{Name: "trace", Aliases: []string{"t"}, Usage: "write a per-instruction trace log to this path"},
			&cli.Uint64Flag{Name: "entry", Usage: "override the reset vector with this PC before running"},
		},
		Action: func(c *cli.Context) error {
			return runROM(c)
		},
	}
}

func runROM(c *cli.Context) error {
	if c.String("rom") == "" {
		cli.ShowCommandHelp(c, "run")
		return cli.Exit("missing required -rom flag", 1)
	}

	cfg := config.NewConfig()
	if p := c.String("config"); p != "" {
		if err := cfg.LoadFromFile(p); err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}
	if c.Bool("decimal") {
		cfg.DecimalModeEnabled = true
	}
	if c.Bool("strict-ppu") {
		cfg.StrictPPU = true
	}
	if l := c.Uint64("limit"); l != 0 {
		cfg.InstructionLimit = l
	}
	if t := c.String("trace"); t != "" {
		cfg.TracePath = t
	}
	cfg.ROMPath = c.String("rom")

	cart, err := loadCartridge(cfg.ROMPath)
	if err != nil {
		return err
	}

	b := bus.New(cart, cfg.StrictPPU)
	proc := cpu.New(b, cfg.DecimalModeEnabled)

	if entry := c.Uint64("entry"); entry != 0 {
		proc.PC = uint16(entry)
	}

	var traceFile *os.File
	if cfg.TracePath != "" {
		traceFile, err = os.Create(cfg.TracePath)
		if err != nil {
			return fmt.Errorf("opening trace file: %w", err)
		}
		defer traceFile.Close()
	}

	var executed uint64
	runErr := proc.RunWithCallback(func(cp *cpu.Cpu) {
		if traceFile != nil {
			fmt.Fprintln(traceFile, trace.Line(cp))
		}
		executed++
		if cfg.InstructionLimit != 0 && executed >= cfg.InstructionLimit {
			cp.Halted = true
		}
	})

	fmt.Printf("executed %d instructions, %d cycles\n", executed, proc.Cycles())
	fmt.Printf("A:%02X X:%02X Y:%02X P:%02X SP:%02X PC:%04X\n",
		proc.A, proc.X, proc.Y, proc.P, proc.S, proc.PC)

	if runErr != nil {
		return fmt.Errorf("core halted: %w", runErr)
	}
	return nil
}

func infoCommand() *cli.Command {
	return &cli.Command{
		Name:  "info",
		Usage: "print a parsed iNES cartridge header",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "rom", Aliases: []string{"r"}, Usage: "path to an iNES ROM (required)"},
		},
		Action: func(c *cli.Context) error {
			if c.String("rom") == "" {
				cli.ShowCommandHelp(c, "info")
				return cli.Exit("missing required -rom flag", 1)
			}
			cart, err := loadCartridge(c.String("rom"))
			if err != nil {
				return err
			}
			fmt.Printf("mapper:      %d\n", cart.Mapper())
			fmt.Printf("mirroring:   %s\n", cart.Mirroring())
			fmt.Printf("PRG size:    %d bytes\n", cart.PrgSize())
			fmt.Printf("CHR size:    %d bytes\n", len(cart.ChrROM()))
			fmt.Printf("CHR is RAM:  %t\n", cart.HasChrRAM())
			return nil
		},
	}
}

func viewCommand() *cli.Command {
	return &cli.Command{
		Name:  "view",
		Usage: "display a cartridge's CHR pattern tables",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "rom", Aliases: []string{"r"}, Usage: "path to an iNES ROM (required)"},
		},
		Action: func(c *cli.Context) error {
			if c.String("rom") == "" {
				cli.ShowCommandHelp(c, "view")
				return cli.Exit("missing required -rom flag", 1)
			}
			cart, err := loadCartridge(c.String("rom"))
			if err != nil {
				return err
			}
			return chrview.NewViewer().Run(cart.ChrROM())
		},
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "print detailed build information",
		Action: func(c *cli.Context) error {
			fmt.Println(version.GetDetailedVersion())
			version.PrintBuildInfo()
			return nil
		},
	}
}

func loadCartridge(path string) (*cartridge.Cartridge, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading ROM %q: %w", path, err)
	}
	cart, err := cartridge.Load(data)
	if err != nil {
		return nil, fmt.Errorf("loading ROM %q: %w", path, err)
	}
	return cart, nil
}
