// Package main provides the Ember Compute Framework CLI.
package main

import (
	"fmt"
	"os"

	"github.com/ember-hpc/ember/backend/webgpu"
)

const version = "v0.1.0-dev"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			fmt.Printf("Ember Compute Framework %s\n", version)
			return
		case "devices":
			printDevices()
			return
		}
	}

	fmt.Println("Ember Compute Framework - Parallel Reductions for Go")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("  devices    Probe available compute devices")
}

func printDevices() {
	fmt.Println("in-process engine: available")
	if !webgpu.IsAvailable() {
		fmt.Println("webgpu: unavailable")
		return
	}
	gpu, err := webgpu.New()
	if err != nil {
		fmt.Printf("webgpu: %v\n", err)
		return
	}
	defer gpu.Release()
	fmt.Printf("webgpu: %s\n", gpu.Name())
}
