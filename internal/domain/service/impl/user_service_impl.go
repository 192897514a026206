package impl

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/velora/velora-commerce-go/internal/domain/dao"
	"github.com/velora/velora-commerce-go/internal/domain/entity"
	"github.com/velora/velora-commerce-go/internal/domain/service"
	"github.com/velora/velora-commerce-go/internal/dto/request"
	"github.com/velora/velora-commerce-go/internal/security"
	apperrors "github.com/velora/velora-commerce-go/pkg/errors"
)

// userService implements service.UserService
type userService struct {
	userDAO        dao.UserDAO
	passwordHasher *security.PasswordHasher
}

// NewUserService creates a new UserService instance
func NewUserService(userDAO dao.UserDAO, passwordHasher *security.PasswordHasher) service.UserService {
	return &userService{userDAO: userDAO, passwordHasher: passwordHasher}
}

func (s *userService) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error) {
	user, err := s.userDAO.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, service.ErrUserNotFound
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, id primitive.ObjectID, req *request.UpdateProfileRequest) (*entity.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}

	if err := s.userDAO.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) ChangePassword(ctx context.Context, id primitive.ObjectID, req *request.ChangePasswordRequest) error {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !s.passwordHasher.Verify(req.CurrentPassword, user.Password) {
		return service.ErrInvalidCredentials
	}

	hashed, err := s.passwordHasher.Hash(req.NewPassword)
	if err != nil {
		return err
	}
	user.Password = hashed
	return s.userDAO.Update(ctx, user)
}

func (s *userService) AddAddress(ctx context.Context, id primitive.ObjectID, req *request.AddressRequest) (*entity.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	addr := addressFromRequest(req)
	if len(user.Addresses) == 0 {
		addr.IsDefault = true
	}
	if addr.IsDefault {
		for i := range user.Addresses {
			user.Addresses[i].IsDefault = false
		}
	}
	user.Addresses = append(user.Addresses, addr)

	if err := s.userDAO.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateAddress(ctx context.Context, id primitive.ObjectID, index int, req *request.AddressRequest) (*entity.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(user.Addresses) {
		return nil, apperrors.BadRequest("address index out of range")
	}

	addr := addressFromRequest(req)
	if addr.IsDefault {
		for i := range user.Addresses {
			user.Addresses[i].IsDefault = false
		}
	}
	user.Addresses[index] = addr

	if err := s.userDAO.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) RemoveAddress(ctx context.Context, id primitive.ObjectID, index int) (*entity.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(user.Addresses) {
		return nil, apperrors.BadRequest("address index out of range")
	}

	removedDefault := user.Addresses[index].IsDefault
	user.Addresses = append(user.Addresses[:index], user.Addresses[index+1:]...)
	if removedDefault && len(user.Addresses) > 0 {
		user.Addresses[0].IsDefault = true
	}

	if err := s.userDAO.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) List(ctx context.Context, filter dao.UserFilter, page, limit int) ([]*entity.User, int64, error) {
	return s.userDAO.FindAll(ctx, filter, page, limit)
}

func (s *userService) UpdateStatus(ctx context.Context, id primitive.ObjectID, status entity.UserStatus) error {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return s.userDAO.UpdateStatus(ctx, user.ID, status)
}

func (s *userService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.userDAO.Delete(ctx, id)
}

func addressFromRequest(req *request.AddressRequest) entity.Address {
	return entity.Address{
		Label:      req.Label,
		FullName:   req.FullName,
		Phone:      req.Phone,
		Street:     req.Street,
		City:       req.City,
		Area:       req.Area,
		PostalCode: req.PostalCode,
		Country:    req.Country,
		IsDefault:  req.IsDefault,
	}
}
