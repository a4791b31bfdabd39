package services

type SetupUserRepository interface {
	CountUsers() (int64, error)
}

// SetupService reports whether the instance has its owner profile yet. Owners are
// only added from the command line, so the API can merely report the state.
type SetupService struct {
	users SetupUserRepository
}

func NewSetupService(users SetupUserRepository) *SetupService {
	return &SetupService{users: users}
}

func (service *SetupService) OwnerConfigured() (bool, error) {
	count, err := service.users.CountUsers()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
