package handler

import (
	"net/http"

	"github.com/xuri/excelize/v2"
)

var exportHeaders = []string{"ID", "姓名", "邮箱", "班级", "组别", "学号", "登记时间"}

// ExportStudents 把当前筛选条件下的学生名单导出成 xlsx。
// 筛选参数和列表接口完全一致。
func (h *Handler) ExportStudents(w http.ResponseWriter, r *http.Request) {
	students, err := h.service.List(studentFilters(r))
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			h.serviceError(w, r, err)
			return
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			h.serviceError(w, r, err)
			return
		}
	}

	for row, student := range students {
		values := []any{
			student.ID,
			student.Name,
			student.Email,
			student.Class,
			student.Section,
			student.Roll,
			student.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				h.serviceError(w, r, err)
				return
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				h.serviceError(w, r, err)
				return
			}
		}
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="students.xlsx"`)
	if err := f.Write(w); err != nil {
		// 响应头已经发出，只能记日志
		h.logger.Error("导出学生名单失败", "error", err)
	}
}
