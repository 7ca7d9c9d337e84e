package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

func newFileRouter(app *testApp) *gin.Engine {
	r := gin.New()
	files := r.Group("/api/files")
	files.Use(app.auth.UserRequired(), app.auth.UserCheck())
	files.POST("", app.h.RegisterFile)
	files.GET("", app.h.ListMyFiles)
	files.DELETE("/:id", app.h.DeleteFile)
	return r
}

// 测试内容：文件登记、列表与删除的闭环，非法链接拒绝登记。
func TestFileLifecycle(t *testing.T) {
	app := setupTestApp(t)
	r := newFileRouter(app)
	alice := app.createUser(t, "alice", "alice@example.com", "Passw0rd123", true)
	cookie := loginCookie(t, alice)

	w := doJSON(t, r, http.MethodPost, "/api/files", gin.H{
		"name": "photo.png",
		"url":  "https://cdn.example.com/photo.png",
		"type": "image/png",
		"size": 2048,
	}, cookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("期望 201，实际为 %d body=%s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	file, _ := body["file"].(map[string]interface{})
	fileID := uint(file["id"].(float64))

	// 非 http/https 链接拒绝
	w = doJSON(t, r, http.MethodPost, "/api/files", gin.H{
		"name": "bad",
		"url":  "ftp://example.com/bad",
	}, cookie)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("非法链接期望 400，实际为 %d body=%s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/api/files", nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d body=%s", w.Code, w.Body.String())
	}
	body = decodeBody(t, w)
	if total, _ := body["total"].(float64); total != 1 {
		t.Fatalf("文件总数期望 1，实际为 %v", body["total"])
	}

	// 他人不能删除
	bob := app.createUser(t, "bob", "bob@example.com", "Passw0rd123", true)
	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/files/%d", fileID), nil, loginCookie(t, bob))
	if w.Code != http.StatusForbidden {
		t.Fatalf("他人删除期望 403，实际为 %d body=%s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/files/%d", fileID), nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("本人删除期望 200，实际为 %d body=%s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/files/%d", fileID), nil, cookie)
	if w.Code != http.StatusNotFound {
		t.Fatalf("重复删除期望 404，实际为 %d body=%s", w.Code, w.Body.String())
	}
}

// 测试内容：已挂到消息上的附件不允许删除。
func TestDeleteFile_AttachedRefused(t *testing.T) {
	app := setupTestApp(t)
	fileRouter := newFileRouter(app)
	msgRouter := newMessageRouter(app)
	alice := app.createUser(t, "alice", "alice@example.com", "Passw0rd123", true)
	bob := app.createUser(t, "bob", "bob@example.com", "Passw0rd123", true)
	cookie := loginCookie(t, alice)

	w := doJSON(t, fileRouter, http.MethodPost, "/api/files", gin.H{
		"name": "attach.png",
		"url":  "https://cdn.example.com/attach.png",
	}, cookie)
	body := decodeBody(t, w)
	file, _ := body["file"].(map[string]interface{})
	fileID := uint(file["id"].(float64))

	w = doJSON(t, msgRouter, http.MethodPost, "/api/messages", gin.H{
		"recipient_id": bob.ID,
		"file_ids":     []uint{fileID},
	}, cookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("带附件消息期望 201，实际为 %d body=%s", w.Code, w.Body.String())
	}

	w = doJSON(t, fileRouter, http.MethodDelete, fmt.Sprintf("/api/files/%d", fileID), nil, cookie)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("删除已挂载附件期望 400，实际为 %d body=%s", w.Code, w.Body.String())
	}
}
