package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Is(t *testing.T) {
	cause := errors.New("driver: duplicate")
	err := fmt.Errorf("commit: %w", UniqueKey(cause, MsgPKExist))

	assert.True(t, Is(err, UniqueKey(nil, MsgPKExist)))
	assert.False(t, Is(err, UniqueKey(nil, MsgDepartmentNameUnavailable)))
	assert.False(t, Is(err, ForeignKey(nil, MsgPKExist)))
	assert.True(t, Is(err, cause))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation(MsgEmptyID)))
	assert.Equal(t, KindForeignKeyViolation, KindOf(fmt.Errorf("wrap: %w", ForeignKey(nil, MsgRoleFK))))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
	assert.Equal(t, "unique_key_violation", KindUniqueKeyViolation.String())
}

func TestCodeAndMessage(t *testing.T) {
	assert.Equal(t, 422, GetCode(Validation(MsgEmptyRoomNumber)))
	assert.Equal(t, MsgEmptyRoomNumber, GetMessage(Validation(MsgEmptyRoomNumber)))
	assert.Equal(t, 500, GetCode(errors.New("plain")))
	assert.Equal(t, "plain", GetMessage(errors.New("plain")))
	assert.Equal(t, "部门不存在", NotFound("部门").Message)
	assert.Equal(t, "[409] 部门ID已存在: x", UniqueKey(errors.New("x"), MsgPKExist).Error())
}
