// importctl imports a QTI exam package against a running gateway: log in,
// upload the zip, print the aggregate result.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

func main() {
	var (
		apiBase  = flag.String("api", "http://localhost:8080", "gateway base URL")
		examID   = flag.String("exam", "", "target exam ID (required)")
		pkgPath  = flag.String("file", "", "path to QTI .zip package (required)")
		username = flag.String("user", "admin", "login username")
		password = flag.String("pass", "", "login password (required)")
	)
	flag.Parse()
	if *examID == "" || *pkgPath == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	client := &http.Client{Timeout: 5 * time.Minute}
	base := strings.TrimSuffix(*apiBase, "/")

	token, err := login(client, base, *username, *password)
	if err != nil {
		fatalf("login: %v", err)
	}

	res, err := runImport(client, base, token, *examID, *pkgPath)
	if err != nil {
		fatalf("import: %v", err)
	}

	fmt.Printf("imported %d question(s)\n", res.Imported)
	for _, msg := range res.Errors {
		fmt.Printf("error: %s\n", msg)
	}
	if len(res.Errors) > 0 {
		os.Exit(1)
	}
}

func login(client *http.Client, base, user, pass string) (string, error) {
	body, _ := json.Marshal(map[string]string{"username": user, "password": pass})
	resp, err := client.Post(base+"/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}
	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.AccessToken, nil
}

type importResult struct {
	Imported int      `json:"imported"`
	Errors   []string `json:"errors"`
}

func runImport(client *http.Client, base, token, examID, pkgPath string) (importResult, error) {
	pkg, err := os.ReadFile(pkgPath)
	if err != nil {
		return importResult{}, err
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(pkgPath))
	if err != nil {
		return importResult{}, err
	}
	if _, err := part.Write(pkg); err != nil {
		return importResult{}, err
	}
	if err := mw.Close(); err != nil {
		return importResult{}, err
	}

	req, err := http.NewRequest(http.MethodPost, base+"/exams/"+examID+"/import", &buf)
	if err != nil {
		return importResult{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := client.Do(req)
	if err != nil {
		return importResult{}, err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		var e struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(raw, &e) == nil && e.Error != "" {
			return importResult{}, fmt.Errorf("%s", e.Error)
		}
		return importResult{}, fmt.Errorf("status %d", resp.StatusCode)
	}
	var res importResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return importResult{}, err
	}
	return res, nil
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
