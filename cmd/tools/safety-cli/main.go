package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

const defaultServerAddr = "http://localhost:8090"

func main() {
	var (
		serverAddr = flag.String("server", defaultServerAddr, "Адрес REST API сервера")
		command    = flag.String("cmd", "status", "Команда: status, enable, disable, rebuild, dump")
	)
	flag.Parse()

	client := &http.Client{Timeout: 10 * time.Second}

	// Выполняем команду
	switch *command {
	case "status":
		if err := get(client, *serverAddr+"/api/safety/status"); err != nil {
			log.Fatalf("❌ Status failed: %v", err)
		}

	case "enable":
		if err := post(client, *serverAddr+"/api/safety/enable"); err != nil {
			log.Fatalf("❌ Enable failed: %v", err)
		}

	case "disable":
		if err := post(client, *serverAddr+"/api/safety/disable"); err != nil {
			log.Fatalf("❌ Disable failed: %v", err)
		}

	case "rebuild":
		if err := post(client, *serverAddr+"/api/safety/rebuild"); err != nil {
			log.Fatalf("❌ Rebuild failed: %v", err)
		}

	case "dump":
		if err := get(client, *serverAddr+"/api/safety/components"); err != nil {
			log.Fatalf("❌ Dump failed: %v", err)
		}

	default:
		fmt.Printf("❌ Unknown command: %s\n", *command)
		fmt.Println("Available commands: status, enable, disable, rebuild, dump")
		os.Exit(1)
	}
}

func get(client *http.Client, url string) error {
	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return printResponse(resp)
}

func post(client *http.Client, url string) error {
	resp, err := client.Post(url, "application/json", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return printResponse(resp)
}

// printResponse выводит тело ответа с отступами (или как есть, если не JSON)
func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var pretty map[string]interface{}
	if err := json.Unmarshal(body, &pretty); err != nil {
		fmt.Println(string(body))
		return nil
	}
	out, _ := json.MarshalIndent(pretty, "", "  ")
	fmt.Println(string(out))
	return nil
}
