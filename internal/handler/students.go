package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sysu-ecnc-dev/student-manager/backend/internal/domain"
	"github.com/sysu-ecnc-dev/student-manager/backend/internal/validation"
)

type StudentListResponse struct {
	Count    int               `json:"count"`
	Students []*domain.Student `json:"students"`
}

func studentFilters(r *http.Request) domain.StudentFilters {
	query := r.URL.Query()
	return domain.StudentFilters{
		Name:    query.Get("name"),
		Class:   query.Get("class"),
		Section: query.Get("section"),
		Roll:    query.Get("roll"),
	}
}

func (h *Handler) ListStudents(w http.ResponseWriter, r *http.Request) {
	students, err := h.service.List(studentFilters(r))
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, StudentListResponse{
		Count:    len(students),
		Students: students,
	})
}

func (h *Handler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	req := validation.CreatePayload{}
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	in, err := validation.ValidateCreate(&req)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	student, err := h.service.Create(in)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusCreated, student)
}

func (h *Handler) GetStudent(w http.ResponseWriter, r *http.Request) {
	id, err := validation.ValidateID(chi.URLParam(r, "id"))
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	student, err := h.service.Get(id)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, student)
}

func (h *Handler) UpdateStudent(w http.ResponseWriter, r *http.Request) {
	id, err := validation.ValidateID(chi.URLParam(r, "id"))
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	// 请求体里即使带了 id 也会在解码时被丢弃，资源只认路径
	req := validation.UpdatePayload{}
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	patch, err := validation.ValidateUpdate(&req)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	student, err := h.service.Update(id, patch)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, student)
}

func (h *Handler) SetStudentStatus(w http.ResponseWriter, r *http.Request) {
	// 身份检查放在最前面：未登录的请求不允许触发任何存储访问
	reviewerID, err := validation.RequireCaller(callerID(r.Context()))
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	id, err := validation.ValidateID(chi.URLParam(r, "id"))
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	req := validation.StatusPayload{}
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	status, err := validation.ValidateStatus(&req)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	student, err := h.service.SetStatus(id, status, reviewerID)
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, student)
}

func (h *Handler) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	reviewerID, err := validation.RequireCaller(callerID(r.Context()))
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	id, err := validation.ValidateID(chi.URLParam(r, "id"))
	if err != nil {
		h.serviceError(w, r, err)
		return
	}

	if err := h.service.Delete(id, reviewerID); err != nil {
		h.serviceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
