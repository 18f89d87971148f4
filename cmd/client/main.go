// Package main is the LOG-SGB operator console: an interactive shell for
// inspecting the dashboard data and downloading CSV reports.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/serragrande/logsgb/internal/client/storage"
)

var (
	version   string
	buildDate string
)

// repl runs the interactive shell loop.
func repl(client *storage.Client, ls *storage.LocalStorage) {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("logsgb> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "help":
			fmt.Println("Available commands: help, login <user> <pass>, reload, summary, " +
				"list <collection>, stats [month year], export <kind>, exit")
		case "login":
			if len(args) < 3 {
				fmt.Println("Usage: login <user> <pass>")
				continue
			}
			if err := client.Login(args[1], args[2]); err != nil {
				fmt.Println("login error:", err)
			}
		case "reload":
			if err := client.Refresh(ls); err != nil {
				fmt.Println("reload error:", err)
				continue
			}
			_ = ls.Save()
			ls.Summary()
		case "summary":
			ls.Summary()
		case "list":
			if len(args) < 2 {
				fmt.Println("Usage: list <products|drivers|trucks|trailers|shipments>")
				continue
			}
			ls.List(args[1])
		case "stats":
			now := time.Now()
			month, year := int(now.Month()), now.Year()
			if len(args) >= 3 {
				var err1, err2 error
				month, err1 = strconv.Atoi(args[1])
				year, err2 = strconv.Atoi(args[2])
				if err1 != nil || err2 != nil {
					fmt.Println("Usage: stats [month year]")
					continue
				}
			}
			raw, err := client.Stats(month, year)
			if err != nil {
				fmt.Println("stats error:", err)
				continue
			}
			var pretty map[string]any
			if err := json.Unmarshal(raw, &pretty); err == nil {
				b, _ := json.MarshalIndent(pretty, "", "  ")
				fmt.Println(string(b))
			} else {
				fmt.Println(string(raw))
			}
		case "export":
			if len(args) < 2 {
				fmt.Println("Usage: export <shipments|products|drivers|expiry>")
				continue
			}
			name, err := client.DownloadReport(args[1])
			if err != nil {
				fmt.Println("export error:", err)
				continue
			}
			fmt.Println("Saved", name)
		case "exit":
			_ = client.Logout()
			fmt.Println("Bye")
			return
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
		}
	}
}

// main parses command-line flags and starts the shell.
func main() {
	var (
		baseURL string
		showVer bool
	)

	flag.StringVar(&baseURL, "url", "http://localhost:8080", "server base URL")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("LOG-SGB Console\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	ls := &storage.LocalStorage{}
	_ = ls.Load()

	repl(storage.NewClient(baseURL), ls)
}
