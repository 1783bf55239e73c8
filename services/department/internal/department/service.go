package department

import (
	"context"
	"time"

	"github.com/edmback/pkg/auth"
	"github.com/edmback/pkg/dal"
	"github.com/edmback/pkg/errors"
	"github.com/edmback/services/department/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service 部门服务
// 所有操作在角色集合为空时直接返回 nil, nil，不访问数据库
type Service struct {
	db  *gorm.DB
	log *zap.Logger
	now func() time.Time
}

// NewService 创建部门服务
func NewService(db *gorm.DB, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{db: db, log: log.Named("department"), now: time.Now}
}

// loadDepartments 按条件加载部门及成员、账号、角色
func loadDepartments(uow *dal.UnitOfWork, pred dal.Predicate) *dal.Query[model.Department] {
	return dal.For[model.Department](uow).
		FindAllByProperty(pred).
		Preload("Staff.Account.Role").
		Order("id")
}

func byStaffAccount(accountID uuid.UUID) dal.Predicate {
	return dal.Where("id IN (SELECT department_id FROM "+model.DepartmentStaff{}.TableName()+" WHERE account_id = ?)", accountID)
}

func toViews(departments []model.Department, policy visibility) []DepartmentView {
	views := make([]DepartmentView, 0, len(departments))
	for i := range departments {
		views = append(views, *toView(&departments[i], policy(departments[i].Staff)))
	}
	return views
}

// GetDepartments 获取全部部门
func (s *Service) GetDepartments(ctx context.Context, roles []string) ([]DepartmentView, error) {
	if len(roles) == 0 {
		return nil, nil
	}
	policy, ok := visibilityFor(auth.Classify(roles))
	if !ok {
		return nil, nil
	}

	uow := dal.NewUnitOfWork(s.db)
	defer uow.Close()

	departments, err := loadDepartments(uow, dal.All()).Find(ctx)
	if err != nil {
		s.log.Error("查询部门列表失败", zap.Error(err))
		return nil, err
	}
	return toViews(departments, policy), nil
}

// GetDepartmentByID 获取部门详情，不存在时返回 nil
func (s *Service) GetDepartmentByID(ctx context.Context, id string, roles []string) (*DepartmentView, error) {
	if len(roles) == 0 {
		return nil, nil
	}
	policy, ok := visibilityFor(auth.Classify(roles))
	if !ok {
		return nil, nil
	}

	uow := dal.NewUnitOfWork(s.db)
	defer uow.Close()

	department, err := loadDepartments(uow, dal.ByID(id)).First(ctx)
	if err != nil {
		s.log.Error("查询部门失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if department == nil {
		return nil, nil
	}
	return toView(department, policy(department.Staff)), nil
}

// GetDepartmentsOfStaff 获取账号所属的部门
// moderator 只能查询角色为 staff 的账号
func (s *Service) GetDepartmentsOfStaff(ctx context.Context, accountID uuid.UUID, roles []string) ([]DepartmentView, error) {
	if len(roles) == 0 {
		return nil, nil
	}
	class := auth.Classify(roles)
	policy, ok := visibilityFor(class)
	if !ok {
		return nil, nil
	}

	uow := dal.NewUnitOfWork(s.db)
	defer uow.Close()

	if class == auth.RoleModerator {
		account, err := dal.For[model.Account](uow).Get(dal.ByID(accountID)).First(ctx)
		if err != nil {
			s.log.Error("查询账号失败", zap.Stringer("accountId", accountID), zap.Error(err))
			return nil, err
		}
		if account == nil || account.RoleID != model.RoleStaffID {
			return nil, nil
		}
	}

	departments, err := loadDepartments(uow, byStaffAccount(accountID)).Find(ctx)
	if err != nil {
		s.log.Error("查询账号所属部门失败", zap.Stringer("accountId", accountID), zap.Error(err))
		return nil, err
	}
	return toViews(departments, policy), nil
}

// CreateDepartment 创建部门
func (s *Service) CreateDepartment(ctx context.Context, req *CreateRequest, createdBy string, roles []string) (*DepartmentView, error) {
	if len(roles) == 0 {
		return nil, nil
	}
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	uow := dal.NewUnitOfWork(s.db)
	defer uow.Close()
	repo := dal.For[model.Department](uow)

	taken, err := s.nameTaken(ctx, repo, req.DepartmentName, req.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errors.UniqueKey(nil, errors.MsgDepartmentNameUnavailable)
	}

	department := req.toModel()
	department.StampCreate(createdBy, s.now())
	if err := repo.Insert(department); err != nil {
		return nil, err
	}
	if _, err := repo.Commit(ctx); err != nil {
		return nil, s.translate(err, "create", department.ID, errors.MsgPKExist)
	}

	s.log.Info("部门已创建", zap.String("id", department.ID), zap.String("by", createdBy))
	return s.reload(ctx, uow, department.ID, roles)
}

// UpdateDepartment 部分更新部门，不存在时返回 nil
func (s *Service) UpdateDepartment(ctx context.Context, id string, req *UpdateRequest, updatedBy string, roles []string) (*DepartmentView, error) {
	if len(roles) == 0 {
		return nil, nil
	}
	if err := validateUpdate(id, req); err != nil {
		return nil, err
	}
	if req == nil {
		req = &UpdateRequest{}
	}

	uow := dal.NewUnitOfWork(s.db)
	defer uow.Close()
	repo := dal.For[model.Department](uow)

	department, err := repo.Get(dal.ByID(id)).First(ctx)
	if err != nil {
		s.log.Error("查询部门失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if department == nil {
		return nil, nil
	}

	if req.DepartmentName != nil {
		taken, err := s.nameTaken(ctx, repo, *req.DepartmentName, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, errors.UniqueKey(nil, errors.MsgDepartmentNameUnavailable)
		}
	}

	req.applyTo(department)
	department.StampUpdate(updatedBy, s.now())
	if err := repo.Update(department); err != nil {
		return nil, err
	}
	if _, err := repo.Commit(ctx); err != nil {
		return nil, s.translate(err, "update", id, errors.MsgDepartmentNameUnavailable)
	}

	s.log.Info("部门已更新", zap.String("id", id), zap.String("by", updatedBy))
	return s.reload(ctx, uow, id, roles)
}

// DeleteDepartment 逻辑删除部门，返回被删除的部门ID
// 部门不存在或已删除时返回 nil
func (s *Service) DeleteDepartment(ctx context.Context, id string, updater string, roles []string) (*string, error) {
	if len(roles) == 0 {
		return nil, nil
	}

	uow := dal.NewUnitOfWork(s.db)
	defer uow.Close()
	repo := dal.For[model.Department](uow)

	department, err := loadDepartments(uow, dal.ByID(id)).First(ctx)
	if err != nil {
		s.log.Error("查询部门失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if department == nil {
		return nil, nil
	}

	department.IsDeleted = true
	department.StampUpdate(updater, s.now())
	if err := repo.Update(department); err != nil {
		return nil, err
	}
	if _, err := repo.Commit(ctx); err != nil {
		s.log.Error("删除部门失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.log.Info("部门已删除", zap.String("id", id), zap.String("by", updater))
	deleted := department.ID
	return &deleted, nil
}

// reload 重新加载写入后的部门
// 调用方没有读权限时按 moderator 规则裁剪成员
func (s *Service) reload(ctx context.Context, uow *dal.UnitOfWork, id string, roles []string) (*DepartmentView, error) {
	policy, ok := visibilityFor(auth.Classify(roles))
	if !ok {
		policy = staffRoleOnly
	}

	department, err := loadDepartments(uow, dal.ByID(id)).First(ctx)
	if err != nil {
		s.log.Error("重新加载部门失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if department == nil {
		return nil, nil
	}
	return toView(department, policy(department.Staff)), nil
}

// nameTaken 未删除的其他部门是否已使用该名称
func (s *Service) nameTaken(ctx context.Context, repo *dal.Repository[model.Department], name, exceptID string) (bool, error) {
	n, err := repo.Get(dal.Where("department_name = ? AND id <> ?", name, exceptID)).Count(ctx)
	if err != nil {
		s.log.Error("校验部门名称失败", zap.String("name", name), zap.Error(err))
		return false, err
	}
	if n > 0 {
		s.log.Warn("部门名称已被使用", zap.String("name", name), zap.String("id", exceptID))
	}
	return n > 0, nil
}

// translate 将约束冲突转换为业务错误，其他错误原样返回
func (s *Service) translate(err error, op, id, uniqueMsg string) error {
	switch dal.Classify(err) {
	case dal.ViolationForeignKey:
		s.log.Warn("外键约束冲突", zap.String("op", op), zap.String("id", id), zap.Error(err))
		return errors.ForeignKey(err, errors.MsgRoleFK)
	case dal.ViolationUniqueKey:
		s.log.Warn("唯一约束冲突", zap.String("op", op), zap.String("id", id), zap.Error(err))
		return errors.UniqueKey(err, uniqueMsg)
	default:
		s.log.Error("写入部门失败", zap.String("op", op), zap.String("id", id), zap.Error(err))
		return err
	}
}

func validateCreate(req *CreateRequest) error {
	if req == nil || req.ID == "" {
		return errors.Validation(errors.MsgEmptyID)
	}
	if req.RoomNumber == "" {
		return errors.Validation(errors.MsgEmptyRoomNumber)
	}
	if req.DepartmentName == "" {
		return errors.Validation(errors.MsgEmptyDepartmentName)
	}
	return nil
}

// validateUpdate 提供的房间号和部门名称不能为空
func validateUpdate(id string, req *UpdateRequest) error {
	if id == "" {
		return errors.Validation(errors.MsgEmptyID)
	}
	if req == nil {
		return nil
	}
	if req.RoomNumber != nil && *req.RoomNumber == "" {
		return errors.Validation(errors.MsgEmptyRoomNumber)
	}
	if req.DepartmentName != nil && *req.DepartmentName == "" {
		return errors.Validation(errors.MsgEmptyDepartmentName)
	}
	return nil
}
