package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/h2non/filetype"

	"github.com/ignatzorin/complaints-dashboard/internal/interface/http/dto"
	"github.com/ignatzorin/complaints-dashboard/internal/interface/http/response"
	"github.com/ignatzorin/complaints-dashboard/internal/usecase/complaint"
)

// ComplaintUseCases набор сценариев, с которыми работает ComplaintHandler.
type ComplaintUseCases struct {
	List       *complaint.ListComplaintsUseCase
	Get        *complaint.GetComplaintUseCase
	Create     *complaint.CreateComplaintUseCase
	Update     *complaint.UpdateComplaintUseCase
	Delete     *complaint.DeleteComplaintUseCase
	Assign     *complaint.AssignComplaintUseCase
	Status     *complaint.UpdateComplaintStatusUseCase
	BulkStatus *complaint.BulkUpdateStatusUseCase
	Recent     *complaint.RecentComplaintsUseCase
	Categories *complaint.CategoriesUseCase
	Stats      *complaint.StatsUseCase
	Attach     *complaint.AttachImageUseCase
}

type ComplaintHandler struct {
	uc             ComplaintUseCases
	maxUploadBytes int64
}

func NewComplaintHandler(uc ComplaintUseCases, maxUploadBytes int64) *ComplaintHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 10 << 20
	}
	return &ComplaintHandler{uc: uc, maxUploadBytes: maxUploadBytes}
}

// List GET /api/admin/complaints
func (h *ComplaintHandler) List(c *gin.Context) {
	var q dto.ComplaintCriteria
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "некорректные параметры запроса")
		return
	}
	q.Page = parseIntQuery(c, "page", 1)
	q.PerPage = parseIntQuery(c, "per_page", 0)

	res, err := h.uc.List.Execute(c.Request.Context(), complaint.ListInput{
		Criteria:      q.Criteria(),
		Page:          q.Page,
		PerPage:       q.PerPage,
		CriteriaToken: q.CriteriaToken,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, dto.ToComplaintResponses(res.Page.Items), response.Pagination{
		Page:          res.Page.Page,
		PerPage:       res.Page.PerPage,
		Total:         res.Page.TotalCount,
		TotalPages:    res.Page.TotalPages,
		Window:        res.Window,
		CriteriaToken: res.CriteriaToken,
	})
}

func (h *ComplaintHandler) Get(c *gin.Context) {
	id, ok := parseInt64Param(c, "id")
	if !ok {
		response.BadRequest(c, "некорректный идентификатор обращения")
		return
	}

	item, err := h.uc.Get.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToComplaintResponse(item))
}

func (h *ComplaintHandler) Create(c *gin.Context) {
	var req dto.CreateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "некорректные данные запроса")
		return
	}

	item, err := h.uc.Create.Execute(c.Request.Context(), req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.ToComplaintResponse(item))
}

func (h *ComplaintHandler) Update(c *gin.Context) {
	id, ok := parseInt64Param(c, "id")
	if !ok {
		response.BadRequest(c, "некорректный идентификатор обращения")
		return
	}

	var req dto.UpdateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "некорректные данные запроса")
		return
	}

	item, err := h.uc.Update.Execute(c.Request.Context(), id, req.ToPatch())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToComplaintResponse(item))
}

func (h *ComplaintHandler) Delete(c *gin.Context) {
	id, ok := parseInt64Param(c, "id")
	if !ok {
		response.BadRequest(c, "некорректный идентификатор обращения")
		return
	}

	if err := h.uc.Delete.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"id": id})
}

// UpdateStatus PATCH /api/admin/complaints/:id/status
func (h *ComplaintHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseInt64Param(c, "id")
	if !ok {
		response.BadRequest(c, "некорректный идентификатор обращения")
		return
	}

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "статус обязателен")
		return
	}

	item, err := h.uc.Status.Execute(c.Request.Context(), id, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToComplaintResponse(item))
}

func (h *ComplaintHandler) BulkUpdateStatus(c *gin.Context) {
	var req dto.BulkStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "некорректные данные запроса")
		return
	}

	items, err := h.uc.BulkStatus.Execute(c.Request.Context(), req.IDs, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToComplaintResponses(items))
}

func (h *ComplaintHandler) Assign(c *gin.Context) {
	id, ok := parseInt64Param(c, "id")
	if !ok {
		response.BadRequest(c, "некорректный идентификатор обращения")
		return
	}

	var req dto.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "исполнитель обязателен")
		return
	}

	item, err := h.uc.Assign.Execute(c.Request.Context(), id, req.AssignedTo)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToComplaintResponse(item))
}

func (h *ComplaintHandler) Recent(c *gin.Context) {
	items, err := h.uc.Recent.Execute(c.Request.Context(), parseIntQuery(c, "limit", complaint.DefaultRecentLimit))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToComplaintResponses(items))
}

func (h *ComplaintHandler) Categories(c *gin.Context) {
	items, err := h.uc.Categories.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, items)
}

func (h *ComplaintHandler) Stats(c *gin.Context) {
	stats, err := h.uc.Stats.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}

// AttachImage POST /api/admin/complaints/:id/images, поле формы "file".
func (h *ComplaintHandler) AttachImage(c *gin.Context) {
	id, ok := parseInt64Param(c, "id")
	if !ok {
		response.BadRequest(c, "некорректный идентификатор обращения")
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+1<<20)
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "файл обязателен")
		return
	}
	if fileHeader.Size > h.maxUploadBytes {
		response.BadRequest(c, "файл слишком большой")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "не удалось прочитать файл")
		return
	}
	defer file.Close()

	head := make([]byte, 261)
	n, _ := io.ReadFull(file, head)
	if kind, err := filetype.Match(head[:n]); err != nil || kind == filetype.Unknown || !filetype.IsImage(head[:n]) {
		response.BadRequest(c, "допускаются только изображения")
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		response.BadRequest(c, "не удалось прочитать файл")
		return
	}

	item, err := h.uc.Attach.Execute(c.Request.Context(), id, fileHeader.Filename, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToComplaintResponse(item))
}
