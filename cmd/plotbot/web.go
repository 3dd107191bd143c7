package main

import (
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
)

const maxUploadBytes = 2 << 30

var uploadFormTemplate = template.Must(template.New("upload").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>plotbot upload</title>
<style>
body { font-family: sans-serif; margin: 4em auto; max-width: 40em; }
input[type=file] { margin: 1em 0; }
</style>
</head>
<body>
<h1>Upload a CSV file</h1>
<p>Plain CSV or zip, gz, lz4 archives. Results arrive in your Telegram chat.</p>
<form action="/upload" method="post" enctype="multipart/form-data">
<input type="hidden" name="uid" value="{{.UID}}">
<input type="file" name="file" required>
<br>
<button type="submit">Upload</button>
</form>
</body>
</html>
`))

// handleUploadForm serves the upload page for a link issued in chat.
func handleUploadForm(w http.ResponseWriter, r *http.Request) {
	uid := r.URL.Query().Get("uid")
	if _, ok := chatForLink(uid); !ok {
		http.Error(w, "unknown or expired upload link, ask the bot for a fresh one", http.StatusForbidden)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := uploadFormTemplate.Execute(w, struct{ UID string }{UID: uid}); err != nil {
		log.Printf("error rendering upload form: %v", err)
	}
}

// handleUpload stores the posted file and continues in the linked chat.
func handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "bad multipart form", http.StatusBadRequest)
		return
	}
	chatID, ok := chatForLink(r.FormValue("uid"))
	if !ok {
		http.Error(w, "unknown or expired upload link, ask the bot for a fresh one", http.StatusForbidden)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file field", http.StatusBadRequest)
		return
	}
	defer file.Close()
	if header.Size > maxUploadBytes {
		http.Error(w, "file too big", http.StatusRequestEntityTooLarge)
		return
	}

	name := filepath.Base(header.Filename)
	if name == "" || name == "." || name == string(filepath.Separator) {
		http.Error(w, "bad file name", http.StatusBadRequest)
		return
	}
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		log.Printf("error creating %s: %v", uploadDir, err)
		http.Error(w, "storage error", http.StatusInternalServerError)
		return
	}
	path := filepath.Join(uploadDir, name)
	out, err := os.Create(path)
	if err != nil {
		log.Printf("error creating %s: %v", path, err)
		http.Error(w, "storage error", http.StatusInternalServerError)
		return
	}
	written, err := io.Copy(out, file)
	out.Close()
	if err != nil {
		log.Printf("error saving %s: %v", path, err)
		http.Error(w, "storage error", http.StatusInternalServerError)
		return
	}
	log.Printf("web upload %s (%d bytes) for chat %d", name, written, chatID)

	go handleFile(bot, chatID, path)
	fmt.Fprintln(w, "Upload accepted. Results will arrive in your Telegram chat.")
}
