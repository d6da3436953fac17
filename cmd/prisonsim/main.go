// Package main is the entry point for the prison-life simulation.
// It only handles flag parsing, dependency injection, and process
// lifecycle. NO game logic belongs here.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/wardenworks/prisonsim/internal/commands"
	"github.com/wardenworks/prisonsim/internal/content"
	"github.com/wardenworks/prisonsim/internal/domain/world"
	"github.com/wardenworks/prisonsim/internal/engine"
	"github.com/wardenworks/prisonsim/internal/feed"
	"github.com/wardenworks/prisonsim/internal/infra/storage"
	"github.com/wardenworks/prisonsim/internal/network"
	"github.com/wardenworks/prisonsim/internal/platform/logger"
)

func main() {
	var (
		nameFlag   = flag.String("name", "", "player name (prompted for when empty)")
		roleFlag   = flag.String("role", "prisoner", "player role: prisoner, guardian, or manager")
		worldFlag  = flag.String("world", "", "optional YAML world file (defaults to the built-in prison)")
		dbFlag     = flag.String("db", "prison.db", "SQLite file for the activity log (empty disables persistence)")
		listenFlag = flag.String("listen", "", "optional address for the spectator WebSocket feed, e.g. :8080")
		seedFlag   = flag.Int64("seed", 0, "random seed (0 uses the current time)")
	)
	flag.Parse()

	appLogger := logger.NewLogger()

	role, err := world.ParseRole(*roleFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	def := content.Default()
	if *worldFlag != "" {
		def, err = content.Load(*worldFlag)
		if err != nil {
			appLogger.Error("Failed to load world file: " + err.Error())
			os.Exit(1)
		}
	}

	var persister feed.Persister
	if *dbFlag != "" {
		db, err := storage.InitSQLite(*dbFlag)
		if err != nil {
			appLogger.Error("Failed to initialize SQLite: " + err.Error())
			os.Exit(1)
		}
		defer db.Close()
		persister = storage.NewFeedRepository(db)
	}
	activityFeed := feed.NewLog(persister)

	in := bufio.NewReader(os.Stdin)
	name := strings.TrimSpace(*nameFlag)
	if name == "" {
		fmt.Println("Welcome to Prison Simulator!")
		fmt.Print("Enter your name: ")
		line, _ := in.ReadString('\n')
		name = strings.TrimSpace(line)
	}
	if name == "" {
		name = "Inmate"
	}

	seed := *seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	gameWorld := world.New(def.Rooms, def.NPCs, name, seed)
	gameWorld.SetPlayerRole(role)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := engine.DefaultConfig()
	cfg.Seed = seed
	notifier := engine.NotifierFunc(func(message string) {
		fmt.Println(message)
	})
	eng := engine.New(gameWorld, activityFeed, appLogger, notifier, cfg)
	eng.Start(ctx)

	if *listenFlag != "" {
		hub := network.NewHub(appLogger)
		go hub.Run(ctx)
		hub.StartFeedPoller(ctx, activityFeed)
		http.HandleFunc("/ws", hub.ServeWS)
		go func() {
			appLogger.Info("Spectator feed listening on " + *listenFlag)
			if err := http.ListenAndServe(*listenFlag, nil); err != nil {
				appLogger.Error("Spectator feed server stopped: " + err.Error())
			}
		}()
	}

	processor := commands.NewProcessor(gameWorld, activityFeed, appLogger, in, os.Stdout)
	processor.Run()

	// Game over: cancel the background processes and join them before
	// exiting.
	cancel()
	eng.Wait()
}
