package drive

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	drive "google.golang.org/api/drive/v3"

	"github.com/jpmusenge/agentic-drive-organizer/internal/model"
)

// Drive MIME types the client cares about.
const (
	MimeTypeFolder       = "application/vnd.google-apps.folder"
	MimeTypeDocument     = "application/vnd.google-apps.document"
	MimeTypeSpreadsheet  = "application/vnd.google-apps.spreadsheet"
	MimeTypePresentation = "application/vnd.google-apps.presentation"
)

// Client wraps the Drive v3 service.
type Client struct {
	svc      *drive.Service
	pageSize int64
}

// NewClient creates a Drive client around an authenticated service.
func NewClient(svc *drive.Service) *Client {
	return &Client{svc: svc, pageSize: 100}
}

// ListRootFolders returns the top-level folders of the user's Drive.
func (c *Client) ListRootFolders(ctx context.Context) ([]model.Folder, error) {
	query := fmt.Sprintf("mimeType = '%s' and 'root' in parents and trashed = false", MimeTypeFolder)

	files, err := c.listAll(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list root folders: %w", err)
	}

	folders := make([]model.Folder, 0, len(files))
	for _, f := range files {
		folders = append(folders, model.Folder{ID: f.Id, Name: f.Name})
	}
	return folders, nil
}

// ListLooseFiles returns the files sitting directly in the Drive root,
// outside any organizing folder.
func (c *Client) ListLooseFiles(ctx context.Context) ([]model.File, error) {
	query := fmt.Sprintf("'root' in parents and mimeType != '%s' and trashed = false", MimeTypeFolder)

	files, err := c.listAll(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list loose files: %w", err)
	}

	out := make([]model.File, 0, len(files))
	for _, f := range files {
		out = append(out, model.File{ID: f.Id, Name: f.Name, MimeType: f.MimeType})
	}
	return out, nil
}

// listAll pages through a files.list query.
func (c *Client) listAll(ctx context.Context, query string) ([]*drive.File, error) {
	var all []*drive.File
	pageToken := ""

	for {
		call := c.svc.Files.List().
			Q(query).
			PageSize(c.pageSize).
			Fields("nextPageToken, files(id, name, mimeType, parents)").
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		result, err := call.Do()
		if err != nil {
			return nil, err
		}

		all = append(all, result.Files...)
		pageToken = result.NextPageToken
		if pageToken == "" {
			break
		}
		slog.Debug("fetched file page", "total_so_far", len(all))
	}

	return all, nil
}

// ContentSnippet exports a bounded plain-text preview of a Google Docs,
// Sheets, or Slides file. Other MIME types yield an empty snippet.
func (c *Client) ContentSnippet(ctx context.Context, file model.File, maxChars int) (string, error) {
	var exportMime string
	switch file.MimeType {
	case MimeTypeDocument, MimeTypePresentation:
		exportMime = "text/plain"
	case MimeTypeSpreadsheet:
		exportMime = "text/csv"
	default:
		return "", nil
	}

	resp, err := c.svc.Files.Export(file.ID, exportMime).Context(ctx).Download()
	if err != nil {
		return "", fmt.Errorf("export %s: %w", file.ID, err)
	}
	defer func() { _ = resp.Body.Close() }()

	content, err := io.ReadAll(io.LimitReader(resp.Body, int64(maxChars)*4))
	if err != nil {
		return "", fmt.Errorf("read export: %w", err)
	}

	text := strings.ToValidUTF8(string(content), "")
	if len(text) > maxChars {
		text = text[:maxChars]
	}
	return text, nil
}

// CreateFolder creates a top-level folder and returns its ID.
func (c *Client) CreateFolder(ctx context.Context, name string) (string, error) {
	folder, err := c.svc.Files.Create(&drive.File{
		Name:     name,
		MimeType: MimeTypeFolder,
	}).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("create folder %q: %w", name, err)
	}
	return folder.Id, nil
}

// MoveFile re-parents a file under the given folder, detaching it from all
// current parents.
func (c *Client) MoveFile(ctx context.Context, fileID, folderID string) error {
	file, err := c.svc.Files.Get(fileID).Fields("parents").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("get parents of %s: %w", fileID, err)
	}

	previousParents := strings.Join(file.Parents, ",")

	_, err = c.svc.Files.Update(fileID, nil).
		AddParents(folderID).
		RemoveParents(previousParents).
		Fields("id, parents").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("move %s: %w", fileID, err)
	}
	return nil
}
