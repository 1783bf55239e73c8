package department

import (
	"github.com/edmback/pkg/errors"
	"github.com/edmback/pkg/middleware"
	"github.com/edmback/pkg/response"
	"github.com/edmback/pkg/router"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var errDepartmentNotFound = errors.NotFound("部门")

// Controller 部门控制器
type Controller struct {
	svc *Service
}

// NewController 创建部门控制器
func NewController(svc *Service) *Controller {
	return &Controller{svc: svc}
}

// Prefix 路由前缀
func (c *Controller) Prefix() string {
	return "/api/departments"
}

// Routes 路由配置
func (c *Controller) Routes() []router.Route {
	auth := []string{"jwt", "authorize"}
	return []router.Route{
		{Method: fiber.MethodGet, Path: "", Handler: c.list, Middlewares: auth},
		{Method: fiber.MethodGet, Path: "/staff/:accountId", Handler: c.listOfStaff, Middlewares: auth},
		{Method: fiber.MethodGet, Path: "/:id", Handler: c.get, Middlewares: auth},
		{Method: fiber.MethodPost, Path: "", Handler: c.create, Middlewares: auth},
		{Method: fiber.MethodPut, Path: "/:id", Handler: c.update, Middlewares: auth},
		{Method: fiber.MethodDelete, Path: "/:id", Handler: c.delete, Middlewares: auth},
	}
}

// list 部门列表
// @Summary 部门列表
// @Tags 部门管理
// @Success 200 {object} response.Response
// @Router /departments [get]
func (c *Controller) list(ctx *fiber.Ctx) error {
	views, err := c.svc.GetDepartments(ctx.UserContext(), middleware.GetRoles(ctx))
	if err != nil {
		return response.FromError(ctx, err)
	}
	if views == nil {
		views = []DepartmentView{}
	}
	return response.Success(ctx, views)
}

// get 部门详情
// @Summary 获取部门详情
// @Tags 部门管理
// @Param id path string true "部门ID"
// @Success 200 {object} response.Response
// @Router /departments/{id} [get]
func (c *Controller) get(ctx *fiber.Ctx) error {
	view, err := c.svc.GetDepartmentByID(ctx.UserContext(), ctx.Params("id"), middleware.GetRoles(ctx))
	if err != nil {
		return response.FromError(ctx, err)
	}
	if view == nil {
		return response.FromError(ctx, errDepartmentNotFound)
	}
	return response.Success(ctx, view)
}

// listOfStaff 账号所属部门
// @Summary 账号所属部门
// @Tags 部门管理
// @Param accountId path string true "账号ID"
// @Success 200 {object} response.Response
// @Router /departments/staff/{accountId} [get]
func (c *Controller) listOfStaff(ctx *fiber.Ctx) error {
	accountID, err := uuid.Parse(ctx.Params("accountId"))
	if err != nil {
		return response.BadRequest(ctx, "invalid account id")
	}

	views, err := c.svc.GetDepartmentsOfStaff(ctx.UserContext(), accountID, middleware.GetRoles(ctx))
	if err != nil {
		return response.FromError(ctx, err)
	}
	if views == nil {
		views = []DepartmentView{}
	}
	return response.Success(ctx, views)
}

// create 创建部门
// @Summary 创建部门
// @Tags 部门管理
// @Accept json
// @Produce json
// @Param request body CreateRequest true "创建部门请求"
// @Success 201 {object} response.Response
// @Router /departments [post]
func (c *Controller) create(ctx *fiber.Ctx) error {
	var req CreateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return response.BadRequest(ctx, err.Error())
	}

	view, err := c.svc.CreateDepartment(ctx.UserContext(), &req, middleware.GetUsername(ctx), middleware.GetRoles(ctx))
	if err != nil {
		return response.FromError(ctx, err)
	}
	if view == nil {
		return response.FromError(ctx, errors.ErrForbidden)
	}
	return response.Created(ctx, view)
}

// update 更新部门
// @Summary 更新部门
// @Tags 部门管理
// @Accept json
// @Produce json
// @Param id path string true "部门ID"
// @Param request body UpdateRequest true "更新部门请求"
// @Success 200 {object} response.Response
// @Router /departments/{id} [put]
func (c *Controller) update(ctx *fiber.Ctx) error {
	var req UpdateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return response.BadRequest(ctx, err.Error())
	}

	view, err := c.svc.UpdateDepartment(ctx.UserContext(), ctx.Params("id"), &req, middleware.GetUsername(ctx), middleware.GetRoles(ctx))
	if err != nil {
		return response.FromError(ctx, err)
	}
	if view == nil {
		return response.FromError(ctx, errDepartmentNotFound)
	}
	return response.Success(ctx, view)
}

// delete 删除部门
// @Summary 删除部门
// @Tags 部门管理
// @Param id path string true "部门ID"
// @Success 200 {object} response.Response
// @Router /departments/{id} [delete]
func (c *Controller) delete(ctx *fiber.Ctx) error {
	id, err := c.svc.DeleteDepartment(ctx.UserContext(), ctx.Params("id"), middleware.GetUsername(ctx), middleware.GetRoles(ctx))
	if err != nil {
		return response.FromError(ctx, err)
	}
	if id == nil {
		return response.FromError(ctx, errDepartmentNotFound)
	}
	return response.Success(ctx, fiber.Map{"id": *id})
}
