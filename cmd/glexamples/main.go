// Command glexamples opens a window and renders one of the example scenes.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/gekko3d/glrender"
	"github.com/gekko3d/glrender/config"
)

func init() {
	// GLFW and the GL context must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "YAML config file overlaid on the defaults")
	scene := flag.String("scene", "", "Scene key; prompts on stdin when empty")
	debug := flag.Bool("debug", false, "Enable debug logging and render-order checks")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if *debug {
		cfg.Debug = true
	}

	key := *scene
	if key == "" {
		key = prompt(cfg)
	}

	app, err := glrender.NewSceneApp(cfg, key, glrender.WindowModule(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func prompt(cfg config.Config) string {
	fmt.Println("Select a scene:")
	for _, s := range cfg.Scenes {
		fmt.Printf("  %s) %s\n", s.Key, s.Name)
	}
	fmt.Print("> ")

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimSpace(line)
}
