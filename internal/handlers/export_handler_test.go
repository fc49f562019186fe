package handlers

import (
	"archive/zip"
	"bytes"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func readZipResponse(t *testing.T, resp *http.Response) map[string]string {
	data, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)

	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	assert.NoError(t, err)

	files := make(map[string]string)
	for _, file := range reader.File {
		rc, err := file.Open()
		assert.NoError(t, err)
		content, err := io.ReadAll(rc)
		assert.NoError(t, err)
		rc.Close()
		files[file.Name] = string(content)
	}
	return files
}

func TestExportHandler_FolderWithSingleFile(t *testing.T) {
	env := newTestEnv(t)
	folder := env.mustCreateFolder(t, "Docs", nil, "")
	env.mustCreateFile(t, "report.pdf", "uploads/report", "pdf bytes", &folder.ID)

	resp, err := env.app.Test(jsonRequest(http.MethodPost, "/export/zip", map[string]interface{}{
		"folderId": folder.ID,
	}))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/zip", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), `"Docs.zip"`)

	files := readZipResponse(t, resp)
	assert.Len(t, files, 1)
	assert.Equal(t, "pdf bytes", files["report.pdf"])
}

func TestExportHandler_NestedFolderTree(t *testing.T) {
	env := newTestEnv(t)
	root := env.mustCreateFolder(t, "Root", nil, "")
	folderA := env.mustCreateFolder(t, "A", &root.ID, "")
	folderB := env.mustCreateFolder(t, "B", &root.ID, "")
	folderC := env.mustCreateFolder(t, "C", &folderB.ID, "")
	env.mustCreateFile(t, "file1.txt", "uploads/file1", "one", &folderA.ID)
	env.mustCreateFile(t, "file2.txt", "uploads/file2", "two", &folderC.ID)

	resp, err := env.app.Test(jsonRequest(http.MethodPost, "/export/zip", map[string]interface{}{
		"folderId": root.ID,
	}))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	files := readZipResponse(t, resp)
	assert.Len(t, files, 2)
	assert.Equal(t, "one", files["A/file1.txt"])
	assert.Equal(t, "two", files["B/C/file2.txt"])
}

func TestExportHandler_EmptyFolder(t *testing.T) {
	env := newTestEnv(t)
	folder := env.mustCreateFolder(t, "Empty", nil, "")

	resp, err := env.app.Test(jsonRequest(http.MethodPost, "/export/zip", map[string]interface{}{
		"folderId": folder.ID,
	}))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Folder is empty", decodeBody(t, resp)["error"])
}

func TestExportHandler_NothingSpecified(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.app.Test(jsonRequest(http.MethodPost, "/export/zip", map[string]interface{}{}))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "No files or folder specified", decodeBody(t, resp)["error"])
}

func TestExportHandler_UnknownFolder(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.app.Test(jsonRequest(http.MethodPost, "/export/zip", map[string]interface{}{
		"folderId": 999,
	}))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestExportHandler_ProtectedFolderRequiresPassword(t *testing.T) {
	env := newTestEnv(t)
	folder := env.mustCreateFolder(t, "Secret", nil, "hunter2")
	env.mustCreateFile(t, "hidden.txt", "uploads/hidden", "ssh", &folder.ID)

	payload := map[string]interface{}{"folderId": folder.ID}

	resp, err := env.app.Test(jsonRequest(http.MethodPost, "/export/zip", payload))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Password required", decodeBody(t, resp)["error"])

	req := jsonRequest(http.MethodPost, "/export/zip", payload)
	req.Header.Set(HeaderFolderPassword, "hunter2")
	resp, err = env.app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	files := readZipResponse(t, resp)
	assert.Equal(t, "ssh", files["hidden.txt"])
}

func TestExportHandler_FileSelection(t *testing.T) {
	env := newTestEnv(t)
	folder := env.mustCreateFolder(t, "Docs", nil, "")
	file1 := env.mustCreateFile(t, "a.txt", "uploads/a", "aaa", nil)
	file2 := env.mustCreateFile(t, "b.txt", "uploads/b", "bbb", &folder.ID)

	resp, err := env.app.Test(jsonRequest(http.MethodPost, "/export/zip", map[string]interface{}{
		"fileIds": []uint{file1.ID, file2.ID},
	}))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "files_")

	// Selection exports are flat regardless of where the files live.
	files := readZipResponse(t, resp)
	assert.Len(t, files, 2)
	assert.Equal(t, "aaa", files["a.txt"])
	assert.Equal(t, "bbb", files["b.txt"])
}

func TestExportHandler_SingleFileSelectionName(t *testing.T) {
	env := newTestEnv(t)
	file := env.mustCreateFile(t, "report.pdf", "uploads/report", "pdf", nil)

	resp, err := env.app.Test(jsonRequest(http.MethodPost, "/export/zip", map[string]interface{}{
		"fileIds": []uint{file.ID},
	}))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), `"report.pdf.zip"`)
}

func TestExportHandler_SelectionSkipsFoldersAndMissing(t *testing.T) {
	env := newTestEnv(t)
	folder := env.mustCreateFolder(t, "Docs", nil, "")

	resp, err := env.app.Test(jsonRequest(http.MethodPost, "/export/zip", map[string]interface{}{
		"fileIds": []uint{folder.ID, 999},
	}))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "No valid files found", decodeBody(t, resp)["error"])
}

func TestExportHandler_DuplicateNamesDisambiguated(t *testing.T) {
	env := newTestEnv(t)
	folderA := env.mustCreateFolder(t, "A", nil, "")
	folderB := env.mustCreateFolder(t, "B", nil, "")
	file1 := env.mustCreateFile(t, "notes.txt", "uploads/n1", "first", &folderA.ID)
	file2 := env.mustCreateFile(t, "notes.txt", "uploads/n2", "second", &folderB.ID)

	resp, err := env.app.Test(jsonRequest(http.MethodPost, "/export/zip", map[string]interface{}{
		"fileIds": []uint{file1.ID, file2.ID},
	}))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	files := readZipResponse(t, resp)
	assert.Len(t, files, 2)
	assert.Equal(t, "first", files["notes.txt"])
	assert.Equal(t, "second", files["notes (1).txt"])
}

func TestExportHandler_MissingObjectBecomesErrorNote(t *testing.T) {
	env := newTestEnv(t)
	folder := env.mustCreateFolder(t, "Docs", nil, "")
	env.mustCreateFile(t, "ok.txt", "uploads/ok", "fine", &folder.ID)
	broken := env.mustCreateFile(t, "broken.txt", "uploads/broken", "", &folder.ID)
	delete(env.storage.blobs, broken.StorageKey)

	resp, err := env.app.Test(jsonRequest(http.MethodPost, "/export/zip", map[string]interface{}{
		"folderId": folder.ID,
	}))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	files := readZipResponse(t, resp)
	assert.Len(t, files, 2)
	assert.Equal(t, "fine", files["ok.txt"])
	assert.Contains(t, files["broken.txt.error.txt"], "Failed to download")
}

func TestExportHandler_TooManyEntries(t *testing.T) {
	env := newTestEnv(t)
	env.cfg.Export.MaxEntries = 1
	folder := env.mustCreateFolder(t, "Docs", nil, "")
	env.mustCreateFile(t, "a.txt", "uploads/a", "aaa", &folder.ID)
	env.mustCreateFile(t, "b.txt", "uploads/b", "bbb", &folder.ID)

	resp, err := env.app.Test(jsonRequest(http.MethodPost, "/export/zip", map[string]interface{}{
		"folderId": folder.ID,
	}))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Too many files to export", decodeBody(t, resp)["error"])
}
