package controller

import (
	"llm_survey_backend/internal/service"
	"llm_survey_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	Export *service.ExportService
}

func NewAdminController(export *service.ExportService) *AdminController {
	return &AdminController{Export: export}
}

// @Summary 反馈数据表格
// @Router /feedback [get]
func (c *AdminController) Feedback(ctx *gin.Context) {
	table, err := c.Export.FeedbackTable()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	rows := make([][]string, 0, len(table.Rows))
	for _, r := range table.Rows {
		rows = append(rows, service.CellValues(r))
	}
	ctx.HTML(http.StatusOK, "feedback.html", gin.H{
		"Columns": table.Columns,
		"Rows":    rows,
	})
}

// @Summary 导出反馈 CSV
// @Produce text/csv
// @Router /download_feedback [get]
func (c *AdminController) DownloadFeedback(ctx *gin.Context) {
	table, err := c.Export.FeedbackTable()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	ctx.Header("Content-Type", "text/csv")
	ctx.Header("Content-Disposition", "attachment;filename="+service.FeedbackCSVFilename)
	ctx.Status(http.StatusOK)
	if err := c.Export.WriteTable(ctx.Writer, table); err != nil {
		_ = ctx.Error(err)
	}
}
