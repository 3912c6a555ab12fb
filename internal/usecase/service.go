package usecase

import (
	"advonex/internal/data/repository"
	"advonex/pkg/imagestore"
	"advonex/pkg/mailer"
	"advonex/pkg/ratelimit"
	"advonex/pkg/sms"
	"advonex/pkg/token"
	"advonex/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth       AuthService
	Profile    ProfileService
	Lawyer     LawyerService
	Client     ClientService
	StaticData StaticDataService
	Upload     UploadService
	Cleanup    *CleanupService
}

// Deps carries everything the services need beyond the repository.
type Deps struct {
	Repo    *repository.Repository
	Config  *utils.Config
	Tokens  *token.Manager
	Limiter ratelimit.Limiter
	SMS     sms.Sender
	Mailer  mailer.Mailer
	Images  imagestore.Store
	Log     *zap.Logger
}

func NewService(d Deps) *Service {
	return &Service{
		Auth:       NewAuthService(d.Repo, d.Config, d.Tokens, d.Limiter, d.SMS, d.Mailer, d.Log),
		Profile:    NewProfileService(d.Repo, d.Log),
		Lawyer:     NewLawyerService(d.Repo, d.Log),
		Client:     NewClientService(d.Repo, d.Log),
		StaticData: NewStaticDataService(d.Repo, d.Log),
		Upload:     NewUploadService(d.Repo, d.Images, d.Log),
		Cleanup:    NewCleanupService(d.Repo, d.Log),
	}
}
