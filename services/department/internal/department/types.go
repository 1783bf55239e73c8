package department

import (
	"time"

	"github.com/edmback/services/department/internal/model"
	"github.com/google/uuid"
)

// CreateRequest 创建部门请求
type CreateRequest struct {
	ID              string      `json:"id"`
	RoomNumber      string      `json:"roomNumber"`
	DepartmentName  string      `json:"departmentName"`
	Hotline         *string     `json:"hotline"`
	StaffAccountIDs []uuid.UUID `json:"staffAccountIds"`
}

// UpdateRequest 更新部门请求，nil 字段保持原值
type UpdateRequest struct {
	RoomNumber     *string `json:"roomNumber"`
	DepartmentName *string `json:"departmentName"`
	Hotline        *string `json:"hotline"`
}

// DepartmentView 部门视图
type DepartmentView struct {
	ID             string      `json:"id"`
	RoomNumber     string      `json:"roomNumber"`
	DepartmentName string      `json:"departmentName"`
	Hotline        *string     `json:"hotline"`
	CreatedBy      string      `json:"createdBy"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedBy      string      `json:"updatedBy"`
	UpdatedAt      time.Time   `json:"updatedAt"`
	Staff          []StaffView `json:"staff"`
}

// StaffView 部门成员视图
type StaffView struct {
	ID        int64        `json:"id"`
	AccountID uuid.UUID    `json:"accountId"`
	Account   *AccountView `json:"account,omitempty"`
}

// AccountView 账号视图，不包含账号所属的部门集合
type AccountView struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	RoleID   int64     `json:"roleId"`
	Role     *RoleView `json:"role,omitempty"`
}

// RoleView 角色视图
type RoleView struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (r *CreateRequest) toModel() *model.Department {
	d := &model.Department{
		ID:             r.ID,
		RoomNumber:     r.RoomNumber,
		DepartmentName: r.DepartmentName,
		Hotline:        r.Hotline,
	}
	for _, id := range r.StaffAccountIDs {
		d.Staff = append(d.Staff, model.DepartmentStaff{DepartmentID: r.ID, AccountID: id})
	}
	return d
}

// applyTo 只覆盖请求中非 nil 的字段
func (r *UpdateRequest) applyTo(d *model.Department) {
	if r.RoomNumber != nil {
		d.RoomNumber = *r.RoomNumber
	}
	if r.DepartmentName != nil {
		d.DepartmentName = *r.DepartmentName
	}
	if r.Hotline != nil {
		d.Hotline = r.Hotline
	}
}

func toView(d *model.Department, staff []model.DepartmentStaff) *DepartmentView {
	v := &DepartmentView{
		ID:             d.ID,
		RoomNumber:     d.RoomNumber,
		DepartmentName: d.DepartmentName,
		Hotline:        d.Hotline,
		CreatedBy:      d.CreatedBy,
		CreatedAt:      d.CreatedAt,
		UpdatedBy:      d.UpdatedBy,
		UpdatedAt:      d.UpdatedAt,
		Staff:          make([]StaffView, 0, len(staff)),
	}
	for i := range staff {
		v.Staff = append(v.Staff, toStaffView(&staff[i]))
	}
	return v
}

func toStaffView(s *model.DepartmentStaff) StaffView {
	v := StaffView{ID: s.ID, AccountID: s.AccountID}
	if a := s.Account; a != nil {
		v.Account = &AccountView{ID: a.ID, Username: a.Username, RoleID: a.RoleID}
		if a.Role != nil {
			v.Account.Role = &RoleView{ID: a.Role.ID, Name: a.Role.Name}
		}
	}
	return v
}
