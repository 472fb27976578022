package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/AykutYamak/MyGuestRooms/internal/config"
	"github.com/AykutYamak/MyGuestRooms/internal/database"
	"github.com/AykutYamak/MyGuestRooms/internal/models"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

type RoomsConfig struct {
	Rooms []config.RoomSeed `yaml:"rooms"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	var (
		roomsPath = flag.String("rooms", "configs/config.yaml", "path to yaml with a rooms section")
		dbPath    = flag.String("db", "./data/guestrooms.db", "path to sqlite db")
	)
	flag.Parse()

	data, err := os.ReadFile(*roomsPath)
	if err != nil {
		return fmt.Errorf("read rooms: %w", err)
	}
	var cfg RoomsConfig
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parse rooms: %w", err)
	}
	if len(cfg.Rooms) == 0 {
		return fmt.Errorf("no rooms in yaml")
	}
	if err = config.ValidateRooms(cfg.Rooms); err != nil {
		return fmt.Errorf("validate rooms: %w", err)
	}

	db, err := database.NewDB(*dbPath, &logger)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	rooms := make([]models.Room, 0, len(cfg.Rooms))
	for _, seed := range cfg.Rooms {
		capacity := seed.Capacity
		if capacity <= 0 {
			capacity = 2
		}
		rooms = append(rooms, models.Room{
			RoomNumber:  seed.RoomNumber,
			Description: seed.Description,
			Capacity:    capacity,
		})
	}

	if err = db.SeedRooms(ctx, rooms); err != nil {
		return fmt.Errorf("seed rooms: %w", err)
	}

	fmt.Printf("done: seeded %d rooms\n", len(rooms))
	return nil
}
