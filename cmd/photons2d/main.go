package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/pprof"
	"strings"

	"github.com/lukaszgryglicki/photons2d/internal/photons2d"
)

func main() {
	photons2d.Debug = os.Getenv("DEBUG") != ""
	photons2d.ForceSequential = os.Getenv("SEQUENTIAL") != ""
	photons2d.AlwaysBVH = os.Getenv("ALWAYS_BVH") != ""
	photons2d.NeverBVH = os.Getenv("NEVER_BVH") != ""
	photons2d.DumpTree = os.Getenv("DUMP_BVH") != ""
	level := slog.LevelInfo
	if photons2d.Debug {
		level = slog.LevelDebug
	}
	if os.Getenv("QUIET") == "" {
		photons2d.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	}
	profile := os.Getenv("PROFILE") != ""
	if profile {
		f, err := os.Create("cpu.out")
		if err != nil {
			panic(err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			panic(err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	cfg := "scenes/config.json"
	if len(os.Args) > 1 {
		cfg = os.Args[1]
	}
	if cfg == "-h" || cfg == "--help" {
		fmt.Printf("usage: %s [config.json | %s]\n", os.Args[0], strings.Join(photons2d.BuiltinSceneNames(), " | "))
		return
	}
	if err := photons2d.Run(cfg); err != nil {
		fmt.Printf("Error: %v\n", err)
		// deferred profile stop does not run past os.Exit
		if profile {
			pprof.StopCPUProfile()
		}
		os.Exit(1)
	}
}
