/*
 * gpsim - Main process.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	getopt "github.com/pborman/getopt/v2"

	config "github.com/rcornwell/gpsim/config/configparser"
	"github.com/rcornwell/gpsim/console"
	"github.com/rcornwell/gpsim/emu/memory"
	"github.com/rcornwell/gpsim/loader"
	"github.com/rcornwell/gpsim/sim"
	logger "github.com/rcornwell/gpsim/util/logger"

	_ "github.com/rcornwell/gpsim/util/debug"
)

var Logger *slog.Logger

func main() {
	optConfig := getopt.StringLong("config", 'c', "gpsim.cfg", "Configuration file")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optImage := getopt.StringLong("image", 'i', "", "Flat binary image to load")
	optEntry := getopt.StringLong("entry", 'e', "0", "Entry point (hex)")
	optCores := getopt.IntLong("cores", 0, 1, "Number of cores")
	optWarps := getopt.IntLong("warps", 0, 4, "Warps per core")
	optLanes := getopt.IntLong("lanes", 0, 32, "Lanes per warp")
	optMemSize := getopt.StringLong("memsize", 0, "16M", "Guest memory size")
	optBatch := getopt.BoolLong("batch", 'b', "Run headless instead of entering the console")
	optDebug := getopt.BoolLong("debug", 'd', "Echo log output to stderr")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	var file *os.File
	if optLogFile != nil && *optLogFile != "" {
		file, _ = os.Create(*optLogFile)
	}
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelDebug)
	Logger = slog.New(logger.NewHandler(file, &slog.HandlerOptions{Level: programLevel, AddSource: false}, optDebug))
	slog.SetDefault(Logger)

	Logger.Info("gpsim started")

	if _, err := os.Stat(*optConfig); err == nil {
		if err := config.LoadConfigFile(*optConfig); err != nil {
			Logger.Error(err.Error())
			os.Exit(1)
		}
	} else if !os.IsNotExist(err) {
		Logger.Error(err.Error())
		os.Exit(1)
	}

	memSize, err := config.ParseSize(*optMemSize)
	if err != nil {
		Logger.Error(err.Error())
		os.Exit(1)
	}
	mem := memory.New(memSize)

	scheduler := sim.NewScheduler(*optCores, *optWarps, *optLanes, mem)

	if *optImage != "" {
		if err := loader.LoadFile(mem, 0, *optImage); err != nil {
			Logger.Error(err.Error())
			os.Exit(1)
		}
	}

	entry, err := config.ParseHex32(*optEntry)
	if err != nil {
		Logger.Error(err.Error())
		os.Exit(1)
	}
	scheduler.Boot(entry)

	if !*optBatch {
		console.Reader(scheduler)
		Logger.Info("gpsim exiting")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		scheduler.Run(ctx)
		close(done)
	}()

	select {
	case <-sigChan:
		Logger.Info("got quit signal")
		cancel()
		<-done
	case <-done:
	}

	Logger.Info("gpsim exiting")
}
