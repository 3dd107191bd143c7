package main

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	retry "github.com/avast/retry-go/v4"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	uuid "github.com/satori/go.uuid"
	"gorm.io/gorm"

	"github.com/pivolan/gograph/config"
	"github.com/pivolan/gograph/domain/models"
	"github.com/pivolan/gograph/render/gochart"
)

const welcomeText = `Send me a CSV file (plain or zip, gz, lz4) and I will load it into ClickHouse and reply with summary statistics and chart commands.

You can also paste a list of numbers to get quantiles, outliers and a density chart.

Big files upload faster through the browser: %s/?uid=%s
The link is valid for one hour.`

// handleText either analyzes pasted numbers or hands out an upload link.
func handleText(bot *tgbotapi.BotAPI, update tgbotapi.Update) {
	chatID := update.Message.Chat.ID
	numbers := extractNumbers(update.Message.Text)
	if len(numbers) < 2 {
		sendUploadLink(bot, chatID)
		return
	}

	stats := analyzeNumbers(numbers)
	notifyHTML(bot, chatID, "<pre>"+formatStats(stats)+"</pre>")

	surface := gochart.New(gochart.WithSize(1024, 512))
	fig, err := densityFigure(surface, numbers, stats)
	if err != nil {
		log.Printf("error building density figure: %v", err)
		return
	}
	buf := bytes.Buffer{}
	if err := surface.RenderPNG(&buf); err != nil {
		log.Printf("error rendering density figure: %v", err)
		return
	}
	if err := sendImage(bot, chatID, fig.Title(), buf.Bytes()); err != nil {
		log.Printf("error sending density figure: %v", err)
	}
}

func sendUploadLink(bot *tgbotapi.BotAPI, chatID int64) {
	cfg := config.GetConfig()
	uid := uuid.NewV4().String()
	issueLink(uid, chatID)
	notify(bot, chatID, fmt.Sprintf(welcomeText, cfg.UploadURL, uid))
}

// handleDocument downloads an attached file and runs the import flow.
func handleDocument(bot *tgbotapi.BotAPI, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	doc := message.Document
	url, err := bot.GetFileDirectURL(doc.FileID)
	if err != nil {
		log.Printf("error resolving file %s: %v", doc.FileID, err)
		notify(bot, chatID, "cannot download this file from Telegram, try again")
		return
	}

	name := filepath.Base(doc.FileName)
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = doc.FileID
	}
	path := filepath.Join(uploadDir, name)
	if err := downloadFile(url, path); err != nil {
		log.Printf("error downloading %s: %v", name, err)
		notify(bot, chatID, "download failed, try again")
		return
	}
	notify(bot, chatID, "File received, importing. This can take a minute for big files.")
	handleFile(bot, chatID, path)
}

func downloadFile(url, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("error creating %s: %v", filepath.Dir(path), err)
	}
	return retry.Do(func() error {
		resp, err := http.Get(url)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected status %s", resp.Status)
		}
		out, err := os.Create(path)
		if err != nil {
			return retry.Unrecoverable(err)
		}
		defer out.Close()
		_, err = io.Copy(out, resp.Body)
		return err
	}, retry.Attempts(3), retry.Delay(time.Second), retry.LastErrorOnly(true))
}

// handleFile unpacks, imports and summarizes an uploaded file. It is the
// shared tail of the Telegram and web upload paths.
func handleFile(bot *tgbotapi.BotAPI, chatID int64, path string) {
	dataPath, err := unpackArchive(path)
	if err != nil {
		log.Printf("error unpacking %s: %v", path, err)
		notify(bot, chatID, fmt.Sprintf("cannot unpack %s: %v", filepath.Base(path), err))
		return
	}
	db, err := openDB()
	if err != nil {
		log.Printf("error connecting to clickhouse: %v", err)
		notify(bot, chatID, "storage is unavailable, try again later")
		return
	}
	table, err := importCSV(db, dataPath)
	if err != nil {
		log.Printf("error importing %s: %v", dataPath, err)
		notify(bot, chatID, fmt.Sprintf("import failed: %v", err))
		return
	}
	rememberTable(chatID, table)
	sendTableOverview(bot, chatID, db, table)
}

func sendTableOverview(bot *tgbotapi.BotAPI, chatID int64, db *gorm.DB, table models.TableName) {
	columns, err := getColumnAndTypeList(db, table)
	if err != nil {
		log.Printf("error describing %s: %v", table, err)
		notify(bot, chatID, fmt.Sprintf("cannot describe table: %v", err))
		return
	}
	notifyHTML(bot, chatID, "<pre>"+formatColumns(columns)+"</pre>")

	summaries, err := summarizeTable(db, table)
	if err != nil {
		log.Printf("error summarizing %s: %v", table, err)
	} else if len(summaries) > 0 {
		notifyHTML(bot, chatID, "<pre>"+formatSummaries(columns, summaries)+"</pre>")
	}
	notify(bot, chatID, "Charts and details:\n"+commandHints(columns))
}

// commandHints lists the commands that make sense for the table's
// column types.
func commandHints(columns []models.ColumnInfo) string {
	var numeric, dates []string
	for _, column := range columns {
		if excludeColumn(column.Name) {
			continue
		}
		if isNumericType(column.Type) {
			numeric = append(numeric, column.Name)
		}
		if isDateType(column.Type) {
			dates = append(dates, column.Name)
		}
	}
	lines := []string{
		"/describe - column list and aggregates",
		"/report - histogram of every numeric column",
	}
	for _, column := range numeric {
		lines = append(lines, fmt.Sprintf("/graph_%s - histogram", column))
	}
	for _, column := range dates {
		lines = append(lines, fmt.Sprintf("/dates_%s__day - rows per day (hour, week, month and year work too)", column))
	}
	if len(numeric) >= 2 {
		pair := numeric[0] + "__" + numeric[1]
		lines = append(lines,
			fmt.Sprintf("/heatmap_%s - density grid", pair),
			fmt.Sprintf("/page_%s - interactive scatter page", pair))
	}
	return strings.Join(lines, "\n")
}
