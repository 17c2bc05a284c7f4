package service

import (
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/sysu-ecnc-dev/student-manager/backend/internal/config"
	"github.com/sysu-ecnc-dev/student-manager/backend/internal/domain"
)

// StudentRepository 是生命周期服务对存储的全部要求。
// 约定：实现方在每条语句里完成角色过滤，没有命中任何行时返回
// sql.ErrNoRows，业务层只依赖这个信号区分「不存在」和「存储故障」。
type StudentRepository interface {
	ResolveRoleID(name string) (int32, error)
	FindStudents(filters domain.StudentFilters) ([]*domain.Student, error)
	UpsertStudent(student *domain.Student) (created bool, err error)
	FindStudentByID(id int64) (*domain.Student, error)
	UpdateStudentFields(id int64, patch *domain.StudentUpdate) (*domain.Student, error)
	SetStudentActive(id int64, active bool, reviewerID int64) (*domain.Student, error)
}

// MailPublisher 是欢迎邮件的投递通道。
// 投递失败只进日志，不允许影响主流程的结果。
type MailPublisher interface {
	Publish(msg *domain.MailMessage) error
}

// StudentService 是适配层看到的学生生命周期服务。
type StudentService interface {
	List(filters domain.StudentFilters) ([]*domain.Student, error)
	Create(in *domain.NewStudent) (*domain.Student, error)
	Get(id int64) (*domain.Student, error)
	Update(id int64, patch *domain.StudentUpdate) (*domain.Student, error)
	SetStatus(id int64, active bool, reviewerID int64) (*domain.Student, error)
	Delete(id int64, reviewerID int64) error
}

type Service struct {
	config      *config.Config
	repository  StudentRepository
	mail        MailPublisher
	redisClient *redis.Client
	logger      *slog.Logger
}

func NewService(cfg *config.Config, repository StudentRepository, mail MailPublisher, redisClient *redis.Client, logger *slog.Logger) *Service {
	return &Service{
		config:      cfg,
		repository:  repository,
		mail:        mail,
		redisClient: redisClient,
		logger:      logger,
	}
}
