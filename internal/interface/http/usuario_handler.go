package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/dcastillo-dev/usuarios-api/internal/application"
	"github.com/dcastillo-dev/usuarios-api/internal/domain/domainerr"
	"github.com/dcastillo-dev/usuarios-api/internal/infrastructure/search"
	"github.com/dcastillo-dev/usuarios-api/pkg/response"
	"github.com/dcastillo-dev/usuarios-api/pkg/validation"
)

// UsuarioHandler exposes the usuario CRUD, listing and search endpoints.
type UsuarioHandler struct {
	Create  *application.CreateUsuarioUseCase
	Get     *application.GetUsuarioUseCase
	GetMail *application.GetUsuarioByEmailUseCase
	Update  *application.UpdateUsuarioUseCase
	Delete  *application.DeleteUsuarioUseCase
	List    *application.ListUsuariosUseCase
	Search  *search.Indexer
	Logger  *logrus.Logger
}

type roleRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type createUsuarioRequest struct {
	Nombre          string        `json:"nombre" binding:"required,max=255"`
	Email           string        `json:"email" binding:"required,email"`
	Password        string        `json:"password" binding:"required,pwd"`
	ApellidoPaterno string        `json:"apellido_paterno" binding:"omitempty,max=255"`
	ApellidoMaterno string        `json:"apellido_materno" binding:"omitempty,max=255"`
	Roles           []roleRequest `json:"roles" binding:"omitempty,dive"`
}

type updateUsuarioRequest struct {
	Nombre          *string `json:"nombre" binding:"omitempty,max=255"`
	Email           *string `json:"email" binding:"omitempty,email"`
	ApellidoPaterno *string `json:"apellido_paterno" binding:"omitempty,max=255"`
	ApellidoMaterno *string `json:"apellido_materno" binding:"omitempty,max=255"`
}

func (h *UsuarioHandler) Store(c *gin.Context) {
	var req createUsuarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	roles := make([]application.RoleDTO, 0, len(req.Roles))
	for _, r := range req.Roles {
		roles = append(roles, application.RoleDTO{Name: r.Name})
	}

	res, err := h.Create.Execute(c.Request.Context(), application.CreateUsuarioRequest{
		Nombre:          req.Nombre,
		Email:           req.Email,
		Password:        req.Password,
		ApellidoPaterno: req.ApellidoPaterno,
		ApellidoMaterno: req.ApellidoMaterno,
		Roles:           roles,
	})
	if err != nil {
		h.domainError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res, "Usuario creado exitosamente", nil)
}

func (h *UsuarioHandler) Show(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	res, err := h.Get.Execute(c.Request.Context(), id)
	if err != nil {
		h.domainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, "usuario", nil)
}

func (h *UsuarioHandler) ShowByEmail(c *gin.Context) {
	email := c.Param("email")
	res, err := h.GetMail.Execute(c.Request.Context(), email)
	if err != nil {
		h.domainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, "usuario", nil)
}

func (h *UsuarioHandler) Index(c *gin.Context) {
	if c.Query("active") == "true" {
		res, err := h.List.ExecuteActiveOnly(c.Request.Context())
		if err != nil {
			h.domainError(c, err)
			return
		}
		response.Success(c, http.StatusOK, res, "usuarios activos", nil)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))
	res, err := h.List.Execute(c.Request.Context(), page, perPage)
	if err != nil {
		h.domainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res.Data, "usuarios", res.Pagination)
}

func (h *UsuarioHandler) Modify(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateUsuarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	res, err := h.Update.Execute(c.Request.Context(), application.UpdateUsuarioRequest{
		ID:              id,
		Nombre:          req.Nombre,
		Email:           req.Email,
		ApellidoPaterno: req.ApellidoPaterno,
		ApellidoMaterno: req.ApellidoMaterno,
	})
	if err != nil {
		h.domainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, "Usuario actualizado exitosamente", nil)
}

// Destroy deactivates: the record survives with activo=false.
func (h *UsuarioHandler) Destroy(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Delete.Execute(c.Request.Context(), id); err != nil {
		h.domainError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Usuario desactivado exitosamente", nil)
}

func (h *UsuarioHandler) SearchUsuarios(c *gin.Context) {
	q := c.Query("q")
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Search.Search(c.Request.Context(), q, size)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Warn("usuario search failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "search unavailable", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", map[string]any{"count": len(hits)})
}

// domainError maps the domain taxonomy onto HTTP statuses; anything outside
// it becomes a generic 500.
func (h *UsuarioHandler) domainError(c *gin.Context, err error) {
	switch domainerr.TypeOf(err) {
	case domainerr.TypeUsuarioNotFound:
		response.Error[any](c, http.StatusNotFound, err.Error(), errDetail(err))
	case domainerr.TypeDuplicateEmail:
		response.Error[any](c, http.StatusConflict, err.Error(), errDetail(err))
	case domainerr.TypeInvalidUsuarioData, domainerr.TypeInvalidArgument:
		response.Error[any](c, http.StatusBadRequest, err.Error(), errDetail(err))
	default:
		if h.Logger != nil {
			h.Logger.WithError(err).Error("unhandled error")
		}
		response.Error[any](c, http.StatusInternalServerError, "Error interno del servidor", nil)
	}
}

func errDetail(err error) map[string]string {
	return map[string]string{"type": string(domainerr.TypeOf(err))}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		response.Error[any](c, http.StatusBadRequest, "invalid id", nil)
		return 0, false
	}
	return id, true
}
