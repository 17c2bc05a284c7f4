package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/sysu-ecnc-dev/student-manager/backend/internal/domain"
	"github.com/sysu-ecnc-dev/student-manager/backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

const roleCacheKeyPrefix = "role_id_"

func (s *Service) List(filters domain.StudentFilters) ([]*domain.Student, error) {
	students, err := s.repository.FindStudents(filters)
	if err != nil {
		return nil, domain.NewStorageFailure(err)
	}

	return students, nil
}

func (s *Service) Create(in *domain.NewStudent) (*domain.Student, error) {
	roleID, err := s.studentRoleID()
	if err != nil {
		return nil, err
	}

	// 为新账号生成随机初始密码，明文只出现在欢迎邮件里
	password := utils.GenerateRandomPassword(s.config.NewStudent.PasswordLength)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.NewStorageFailure(err)
	}

	student := &domain.Student{
		Email:        in.Email,
		PasswordHash: string(passwordHash),
		Name:         in.Name,
		Class:        in.Class,
		Section:      in.Section,
		Roll:         in.Roll,
		RoleID:       roleID,
	}

	created, err := s.repository.UpsertStudent(student)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// 角色过滤让整条语句没有命中任何行，说明邮箱属于非学生账号
			return nil, domain.NewInvalidArgument("该邮箱已被其他账号使用")
		default:
			return nil, domain.NewStorageFailure(err)
		}
	}

	// 只有真正新建的账号才发欢迎邮件，重复登记不会把新密码发出去
	if created {
		go s.sendWelcomeMail(student.Email, student.Name, password)
	}

	return student, nil
}

func (s *Service) Get(id int64) (*domain.Student, error) {
	student, err := s.repository.FindStudentByID(id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// id 不存在、账号不是学生、已被停用，对外都是同一个「不存在」
			return nil, domain.NewNotFound("学生不存在")
		default:
			return nil, domain.NewStorageFailure(err)
		}
	}

	return student, nil
}

func (s *Service) Update(id int64, patch *domain.StudentUpdate) (*domain.Student, error) {
	student, err := s.repository.UpdateStudentFields(id, patch)
	if err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, domain.NewNotFound("学生不存在")
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "users_email_key":
			return nil, domain.NewInvalidArgument("该邮箱已被其他账号使用")
		default:
			return nil, domain.NewStorageFailure(err)
		}
	}

	return student, nil
}

func (s *Service) SetStatus(id int64, active bool, reviewerID int64) (*domain.Student, error) {
	student, err := s.repository.SetStudentActive(id, active, reviewerID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, domain.NewNotFound("学生不存在")
		default:
			return nil, domain.NewStorageFailure(err)
		}
	}

	return student, nil
}

// Delete 是软删除：把学生停用，资料保留，之后仍可以通过状态接口恢复。
func (s *Service) Delete(id int64, reviewerID int64) error {
	if _, err := s.repository.SetStudentActive(id, false, reviewerID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return domain.NewNotFound("学生不存在")
		default:
			return domain.NewStorageFailure(err)
		}
	}

	return nil
}

// studentRoleID 解析学生角色的数值 id，结果在 redis 里缓存。
// 缓存故障只降级不报错：读写失败时记日志，解析继续走数据库。
func (s *Service) studentRoleID() (int32, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(s.config.Redis.OperationTimeout)*time.Second)
	defer cancel()

	key := roleCacheKeyPrefix + domain.RoleStudent
	cached, err := s.redisClient.Get(ctx, key).Int()
	if err == nil {
		return int32(cached), nil
	}
	if !errors.Is(err, redis.Nil) {
		s.logger.Warn("读取角色缓存失败", "key", key, "error", err)
	}

	roleID, err := s.repository.ResolveRoleID(domain.RoleStudent)
	if err != nil {
		return 0, domain.NewStorageFailure(fmt.Errorf("解析学生角色失败: %w", err))
	}

	if err := s.redisClient.Set(ctx, key, int64(roleID), time.Duration(s.config.RoleCache.Expiration)*time.Second).Err(); err != nil {
		s.logger.Warn("写入角色缓存失败", "key", key, "error", err)
	}

	return roleID, nil
}

func (s *Service) sendWelcomeMail(email string, name string, password string) {
	msg := &domain.MailMessage{
		Type: "create_student",
		To:   email,
		Data: domain.CreateStudentMailData{
			Name:     name,
			Email:    email,
			Password: password,
		},
	}

	if err := s.mail.Publish(msg); err != nil {
		s.logger.Error("欢迎邮件入队失败", "email", email, "error", err)
	}
}
