package main

import (
	"fmt"
	"log"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

	"github.com/pivolan/gograph"
)

// Telegram compresses photos; anything bigger goes as a document so the
// user keeps the original resolution.
const photoSizeLimit = 150000

func sendImage(bot *tgbotapi.BotAPI, chatID int64, title string, image []byte) error {
	name := imageName(title, "png")
	file := tgbotapi.FileBytes{Name: name, Bytes: image}
	if len(image) < photoSizeLimit {
		photo := tgbotapi.NewPhotoUpload(chatID, file)
		photo.Caption = title
		_, err := bot.Send(photo)
		if err == nil {
			return nil
		}
		log.Printf("error sending photo %s, retrying as document: %v", name, err)
	}
	doc := tgbotapi.NewDocumentUpload(chatID, file)
	doc.Caption = title
	if _, err := bot.Send(doc); err != nil {
		return fmt.Errorf("error sending document %s: %v", name, err)
	}
	return nil
}

func sendHTMLFile(bot *tgbotapi.BotAPI, chatID int64, title string, page []byte) error {
	name := imageName(title, "html")
	doc := tgbotapi.NewDocumentUpload(chatID, tgbotapi.FileBytes{Name: name, Bytes: page})
	doc.Caption = title + " (open in a browser)"
	if _, err := bot.Send(doc); err != nil {
		return fmt.Errorf("error sending document %s: %v", name, err)
	}
	return nil
}

func imageName(title, ext string) string {
	slug := gograph.Slug(title)
	if slug == "" {
		slug = "chart"
	}
	return fmt.Sprintf("%s_%s.%s", slug, time.Now().Format("20060102_150405"), ext)
}

func notify(bot *tgbotapi.BotAPI, chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := bot.Send(msg); err != nil {
		log.Printf("error sending message to %d: %v", chatID, err)
	}
}

func notifyHTML(bot *tgbotapi.BotAPI, chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := bot.Send(msg); err != nil {
		log.Printf("error sending message to %d: %v", chatID, err)
	}
}
