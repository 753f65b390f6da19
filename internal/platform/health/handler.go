package health

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/n3wth/skills-backend/internal/platform/database"
)

// probedTables 是主存储健康检查要探测的表。
var probedTables = []string{"skills", "upvotes", "comments", "profiles"}

type tableStatus struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// StoreHealthHandler 处理 GET /api/health/store。
// 对主存储的每张核心表做一次单行探测，任何一张失败都返回503。
func StoreHealthHandler(c *gin.Context) {
	if database.AuthDB == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"ok":     false,
			"error":  "主存储未配置",
			"tables": gin.H{},
		})
		return
	}

	allOK := true
	tables := make(map[string]tableStatus, len(probedTables))
	for _, table := range probedTables {
		// 表名来自固定列表，直接拼接是安全的
		var count int64
		err := database.AuthDB.WithContext(c.Request.Context()).
			Raw("SELECT count(1) FROM " + table).
			Scan(&count).Error
		if err != nil {
			allOK = false
			tables[table] = tableStatus{OK: false, Error: err.Error()}
			continue
		}
		tables[table] = tableStatus{OK: true}
	}

	status := http.StatusOK
	if !allOK {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"ok": allOK, "tables": tables})
}
