// plotbot is a Telegram bot and web uploader that turns CSV datasets
// and pasted numbers into charts. Uploaded files are imported into
// ClickHouse, summarized, and plotted through the gograph figure layer.
package main

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

	"github.com/pivolan/gograph/config"
	"github.com/pivolan/gograph/domain/models"
)

const uploadDir = "uploads"

var bot *tgbotapi.BotAPI

// shared bot state, handlers run in goroutines
var (
	mu           sync.Mutex
	uploadLinks  = map[string]int64{}
	linkIssued   = map[string]time.Time{}
	currentTable = map[int64]models.TableName{}
)

func issueLink(uid string, chatID int64) {
	mu.Lock()
	defer mu.Unlock()
	uploadLinks[uid] = chatID
	linkIssued[uid] = time.Now()
}

func chatForLink(uid string) (int64, bool) {
	mu.Lock()
	defer mu.Unlock()
	chatID, ok := uploadLinks[uid]
	return chatID, ok
}

func rememberTable(chatID int64, table models.TableName) {
	mu.Lock()
	defer mu.Unlock()
	currentTable[chatID] = table
}

func tableFor(chatID int64) (models.TableName, bool) {
	mu.Lock()
	defer mu.Unlock()
	table, ok := currentTable[chatID]
	return table, ok
}

func main() {
	cfg := config.GetConfig()

	if _, err := openDB(); err != nil {
		log.Fatalln("cannot connect to clickhouse", err)
	}
	log.Println("connected clickhouse")

	var err error
	bot, err = tgbotapi.NewBotAPI(cfg.TgToken)
	if err != nil {
		log.Fatalln("cannot init telegram bot", err)
	}
	log.Printf("authorized on account %s", bot.Self.UserName)

	http.HandleFunc("/", handleUploadForm)
	http.HandleFunc("/upload", handleUpload)
	go func() {
		log.Printf("upload server listening on %s", cfg.UploadAddr)
		if err := http.ListenAndServe(cfg.UploadAddr, nil); err != nil {
			log.Println("error starting upload server:", err)
			os.Exit(1)
		}
	}()

	go cleanupLoop()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates, err := bot.GetUpdatesChan(u)
	if err != nil {
		log.Fatalln("cannot subscribe to updates", err)
	}
	for update := range updates {
		if update.Message == nil {
			continue
		}
		switch {
		case update.Message.Document != nil:
			go handleDocument(bot, update.Message)
		case update.Message.IsCommand():
			go handleCommand(bot, update)
		case update.Message.Text != "":
			go handleText(bot, update)
		}
	}
}

// cleanupLoop expires upload links after an hour and removes stale
// uploaded files after two.
func cleanupLoop() {
	for {
		time.Sleep(time.Minute)
		mu.Lock()
		for uid, issued := range linkIssued {
			if time.Now().After(issued.Add(time.Hour)) {
				delete(uploadLinks, uid)
				delete(linkIssued, uid)
			}
		}
		mu.Unlock()
		if err := removeOldFiles(uploadDir, time.Now().Add(-2*time.Hour)); err != nil && !os.IsNotExist(err) {
			log.Printf("error cleaning %s: %v", uploadDir, err)
		}
	}
}

func removeOldFiles(dirPath string, maxAge time.Time) error {
	files, err := os.ReadDir(dirPath)
	if err != nil {
		return err
	}
	for _, file := range files {
		filePath := filepath.Join(dirPath, file.Name())
		if file.IsDir() {
			if err := removeOldFiles(filePath, maxAge); err != nil {
				return err
			}
			continue
		}
		info, err := file.Info()
		if err != nil {
			return err
		}
		if info.ModTime().Before(maxAge) {
			if err := os.Remove(filePath); err != nil {
				return err
			}
			log.Printf("removed stale file %s", filePath)
		}
	}
	return nil
}
