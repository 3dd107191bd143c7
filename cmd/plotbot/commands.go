package main

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"gorm.io/gorm"

	"github.com/pivolan/gograph"
	"github.com/pivolan/gograph/config"
	"github.com/pivolan/gograph/domain/models"
	"github.com/pivolan/gograph/render/echarts"
	"github.com/pivolan/gograph/render/gochart"
	"github.com/pivolan/gograph/render/gonumplot"
)

const (
	histogramBucketCount = 20
	heatmapCells         = 32
	scatterSampleLimit   = 10000
	maxReportFigures     = 6
)

// handleCommand dispatches chart commands. Column-bound commands carry
// the column in the command name, graph_<col> style, because Telegram
// offers completion only for the command token.
func handleCommand(bot *tgbotapi.BotAPI, update tgbotapi.Update) {
	chatID := update.Message.Chat.ID
	cmd := update.Message.Command()
	switch {
	case cmd == "start" || cmd == "help":
		sendUploadLink(bot, chatID)
	case cmd == "describe":
		withTable(bot, chatID, func(db *gorm.DB, table models.TableName) {
			sendTableOverview(bot, chatID, db, table)
		})
	case cmd == "report":
		withTable(bot, chatID, func(db *gorm.DB, table models.TableName) {
			sendReport(bot, chatID, db, table)
		})
	case strings.HasPrefix(cmd, "graph_"):
		withTable(bot, chatID, func(db *gorm.DB, table models.TableName) {
			sendHistogram(bot, chatID, db, table, strings.TrimPrefix(cmd, "graph_"))
		})
	case strings.HasPrefix(cmd, "dates_"):
		withTable(bot, chatID, func(db *gorm.DB, table models.TableName) {
			sendDates(bot, chatID, db, table, strings.TrimPrefix(cmd, "dates_"))
		})
	case strings.HasPrefix(cmd, "page_"):
		withTable(bot, chatID, func(db *gorm.DB, table models.TableName) {
			sendScatterPage(bot, chatID, db, table, strings.TrimPrefix(cmd, "page_"))
		})
	case strings.HasPrefix(cmd, "heatmap_"):
		withTable(bot, chatID, func(db *gorm.DB, table models.TableName) {
			sendHeatmap(bot, chatID, db, table, strings.TrimPrefix(cmd, "heatmap_"))
		})
	default:
		notify(bot, chatID, "unknown command, /start shows what I can do")
	}
}

// withTable resolves the chat's current table and a database handle.
func withTable(bot *tgbotapi.BotAPI, chatID int64, fn func(*gorm.DB, models.TableName)) {
	table, ok := tableFor(chatID)
	if !ok {
		notify(bot, chatID, "upload a file first, then ask for charts")
		return
	}
	db, err := openDB()
	if err != nil {
		log.Printf("error connecting to clickhouse: %v", err)
		notify(bot, chatID, "storage is unavailable, try again later")
		return
	}
	fn(db, table)
}

func resolveColumn(db *gorm.DB, table models.TableName, name string) (models.ColumnInfo, error) {
	columns, err := getColumnAndTypeList(db, table)
	if err != nil {
		return models.ColumnInfo{}, err
	}
	for _, column := range columns {
		if column.Name == name {
			return column, nil
		}
	}
	return models.ColumnInfo{}, fmt.Errorf("no column %q in the current table", name)
}

// splitPair splits a col1__col2 command suffix.
func splitPair(rest string) (string, string, error) {
	parts := strings.SplitN(rest, "__", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("expected two column names joined by __, got %q", rest)
	}
	return parts[0], parts[1], nil
}

type pngRenderer interface {
	RenderPNG(w io.Writer) error
}

func renderAndSendPNG(bot *tgbotapi.BotAPI, chatID int64, fig *gograph.Figure, r pngRenderer) {
	buf := bytes.Buffer{}
	if err := r.RenderPNG(&buf); err != nil {
		log.Printf("error rendering %s: %v", fig.Title(), err)
		notify(bot, chatID, fmt.Sprintf("cannot render chart: %v", err))
		return
	}
	if err := sendImage(bot, chatID, fig.Title(), buf.Bytes()); err != nil {
		log.Printf("error sending %s: %v", fig.Title(), err)
	}
}

// sendReport builds one histogram per numeric column as a single-column
// window, archives the images under the chart directory and sends them.
func sendReport(bot *tgbotapi.BotAPI, chatID int64, db *gorm.DB, table models.TableName) {
	columns, err := getColumnAndTypeList(db, table)
	if err != nil {
		notify(bot, chatID, fmt.Sprintf("cannot describe table: %v", err))
		return
	}
	var numeric []models.ColumnInfo
	for _, column := range columns {
		if excludeColumn(column.Name) || !isNumericType(column.Type) {
			continue
		}
		numeric = append(numeric, column)
		if len(numeric) == maxReportFigures {
			break
		}
	}
	if len(numeric) == 0 {
		notify(bot, chatID, "no numeric columns to report on")
		return
	}

	win, err := gograph.NewWindow(len(numeric), 1, func(row, col int) (*gograph.Figure, error) {
		column := numeric[row]
		buckets, err := histogramBuckets(db, table, column.Name, histogramBucketCount)
		if err != nil {
			return nil, err
		}
		return histogramFigure(gochart.New(gochart.WithSize(1024, 512)), column.Name, buckets)
	}, gograph.WindowTitle(fmt.Sprintf("report on %s", table)))
	if err != nil {
		log.Printf("error building report for %s: %v", table, err)
		notify(bot, chatID, fmt.Sprintf("cannot build report: %v", err))
		return
	}

	renderPNG := func(fig *gograph.Figure, w io.Writer) error {
		return fig.Surface().(*gochart.Surface).RenderPNG(w)
	}
	if err := win.SaveImages(config.GetConfig().ChartDir, ".png", renderPNG); err != nil {
		log.Printf("error archiving report for %s: %v", table, err)
	}
	win.Each(func(row, col int, fig *gograph.Figure) {
		renderAndSendPNG(bot, chatID, fig, fig.Surface().(*gochart.Surface))
	})
}

func sendHistogram(bot *tgbotapi.BotAPI, chatID int64, db *gorm.DB, table models.TableName, columnName string) {
	column, err := resolveColumn(db, table, columnName)
	if err != nil {
		notify(bot, chatID, err.Error())
		return
	}
	if !isNumericType(column.Type) {
		notify(bot, chatID, fmt.Sprintf("column %s is %s, graph_ works on numeric columns", column.Name, column.Type))
		return
	}
	buckets, err := histogramBuckets(db, table, column.Name, histogramBucketCount)
	if err != nil {
		log.Printf("error bucketing %s.%s: %v", table, column.Name, err)
		notify(bot, chatID, fmt.Sprintf("cannot build histogram: %v", err))
		return
	}
	surface := gochart.New(gochart.WithSize(1024, 512))
	fig, err := histogramFigure(surface, column.Name, buckets)
	if err != nil {
		log.Printf("error building histogram figure: %v", err)
		return
	}
	renderAndSendPNG(bot, chatID, fig, surface)
}

func sendDates(bot *tgbotapi.BotAPI, chatID int64, db *gorm.DB, table models.TableName, rest string) {
	columnName, unit := rest, "day"
	if c, u, err := splitPair(rest); err == nil {
		columnName, unit = c, u
	}
	column, err := resolveColumn(db, table, columnName)
	if err != nil {
		notify(bot, chatID, err.Error())
		return
	}
	if !isDateType(column.Type) {
		notify(bot, chatID, fmt.Sprintf("column %s is %s, dates_ works on date columns", column.Name, column.Type))
		return
	}
	counts, err := dateBuckets(db, table, column.Name, unit)
	if err != nil {
		notify(bot, chatID, err.Error())
		return
	}
	surface := gochart.New(gochart.WithSize(1024, 512))
	fig, err := timeSeriesFigure(surface, column.Name, unit, counts)
	if err != nil {
		log.Printf("error building time series figure: %v", err)
		notify(bot, chatID, fmt.Sprintf("cannot build chart: %v", err))
		return
	}
	renderAndSendPNG(bot, chatID, fig, surface)
}

func sendScatterPage(bot *tgbotapi.BotAPI, chatID int64, db *gorm.DB, table models.TableName, rest string) {
	xcol, ycol, err := splitPair(rest)
	if err != nil {
		notify(bot, chatID, err.Error())
		return
	}
	for _, name := range []string{xcol, ycol} {
		column, err := resolveColumn(db, table, name)
		if err != nil {
			notify(bot, chatID, err.Error())
			return
		}
		if !isNumericType(column.Type) {
			notify(bot, chatID, fmt.Sprintf("column %s is %s, page_ works on numeric columns", column.Name, column.Type))
			return
		}
	}
	rows, err := samplePairs(db, table, xcol, ycol, scatterSampleLimit)
	if err != nil {
		log.Printf("error sampling %s: %v", table, err)
		notify(bot, chatID, fmt.Sprintf("cannot sample rows: %v", err))
		return
	}
	surface := echarts.New(echarts.WithSize("1200px", "700px"))
	fig, err := scatterFigure(surface, xcol, ycol, rows)
	if err != nil {
		log.Printf("error building scatter figure: %v", err)
		notify(bot, chatID, fmt.Sprintf("cannot build chart: %v", err))
		return
	}
	buf := bytes.Buffer{}
	if err := surface.Render(&buf); err != nil {
		log.Printf("error rendering %s: %v", fig.Title(), err)
		notify(bot, chatID, fmt.Sprintf("cannot render chart: %v", err))
		return
	}
	if err := sendHTMLFile(bot, chatID, fig.Title(), buf.Bytes()); err != nil {
		log.Printf("error sending %s: %v", fig.Title(), err)
	}
}

func sendHeatmap(bot *tgbotapi.BotAPI, chatID int64, db *gorm.DB, table models.TableName, rest string) {
	xcol, ycol, err := splitPair(rest)
	if err != nil {
		notify(bot, chatID, err.Error())
		return
	}
	for _, name := range []string{xcol, ycol} {
		column, err := resolveColumn(db, table, name)
		if err != nil {
			notify(bot, chatID, err.Error())
			return
		}
		if !isNumericType(column.Type) {
			notify(bot, chatID, fmt.Sprintf("column %s is %s, heatmap_ works on numeric columns", column.Name, column.Type))
			return
		}
	}
	cells, xr, yr, err := gridCells(db, table, xcol, ycol, heatmapCells)
	if err != nil {
		log.Printf("error gridding %s: %v", table, err)
		notify(bot, chatID, fmt.Sprintf("cannot build heatmap: %v", err))
		return
	}
	surface := gonumplot.New(gonumplot.WithSize(8, 6))
	fig, err := heatmapFigure(surface, xcol, ycol, cells, xr, yr, heatmapCells)
	if err != nil {
		log.Printf("error building heatmap figure: %v", err)
		notify(bot, chatID, fmt.Sprintf("cannot build chart: %v", err))
		return
	}
	renderAndSendPNG(bot, chatID, fig, surface)
}
