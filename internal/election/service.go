package election

import (
	"context"
	"fmt"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByTelegramID(ctx context.Context, tgID int64) (*User, error)
	HasPermission(ctx context.Context, userID int64, perm string) (bool, error)
}

type GroupRepository interface {
	GetByRef(ctx context.Context, ref GroupRef) (*Group, error)
	// AssignRole clears the role from every group where the user holds it
	// and gives it to the user on the target group, in one transaction.
	AssignRole(ctx context.Context, groupID, userID int64, role Role) error
}

// Nomination is a validated request ready to be sent to the admin chat.
type Nomination struct {
	Requester *User
	Group     *Group
	Role      Role
	// Current is the user holding the role now, nil if vacant.
	Current *User
	Request DelegateRequest
}

// Decision is the outcome of an admin pressing Approve or Deny.
type Decision struct {
	Requester *User
	Group     *Group
	Role      Role
	Approved  bool
}

type Service struct {
	period      *Period
	users       UserRepository
	groups      GroupRepository
	mainGroupID int64
}

// NewService creates the elections service. mainGroupID is the admin chat
// receiving nomination requests; zero means it is not configured.
func NewService(period *Period, users UserRepository, groups GroupRepository, mainGroupID int64) *Service {
	return &Service{period: period, users: users, groups: groups, mainGroupID: mainGroupID}
}

func (s *Service) Period() *Period {
	return s.period
}

func (s *Service) MainGroupID() int64 {
	return s.mainGroupID
}

// UserByTelegramID returns the linked user, or nil if nobody linked that account.
func (s *Service) UserByTelegramID(ctx context.Context, tgID int64) (*User, error) {
	return s.users.GetByTelegramID(ctx, tgID)
}

// CanManage reports whether the user may toggle the period and decide
// nominations. It hits the repository every time.
func (s *Service) CanManage(ctx context.Context, u *User) (bool, error) {
	if u == nil {
		return false, nil
	}
	if u.IsSuperuser {
		return true, nil
	}
	return s.users.HasPermission(ctx, u.ID, PermManageElections)
}

// SetActive opens or closes the election period on behalf of actor.
func (s *Service) SetActive(ctx context.Context, actor *User, active bool) error {
	if err := s.authorize(ctx, actor); err != nil {
		return err
	}
	return s.period.Set(ctx, active)
}

func (s *Service) authorize(ctx context.Context, actor *User) error {
	ok, err := s.CanManage(ctx, actor)
	if err != nil {
		return fmt.Errorf("check permission: %w", err)
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}

// Nominate validates a delegate or subdelegate request. Checks run in order
// and the first failure is returned: period open, admin chat configured,
// arguments of the form <year>.<number>, group exists.
func (s *Service) Nominate(ctx context.Context, requester *User, role Role, args []string) (*Nomination, error) {
	if requester == nil || requester.TelegramID == nil {
		return nil, ErrUserNotLinked
	}

	active, err := s.period.Active(ctx)
	if err != nil {
		return nil, fmt.Errorf("read election period: %w", err)
	}
	if !active {
		return nil, ErrElectionsInactive
	}

	if s.mainGroupID == 0 {
		return nil, ErrNoMainChat
	}

	if len(args) == 0 {
		return nil, fmt.Errorf("%w: missing argument", ErrInvalidGroupRef)
	}
	ref, err := ParseGroupRef(args[0])
	if err != nil {
		return nil, err
	}

	group, err := s.groups.GetByRef(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("get group %s: %w", ref, err)
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}

	n := &Nomination{
		Requester: requester,
		Group:     group,
		Role:      role,
		Request: DelegateRequest{
			RequesterTgID: *requester.TelegramID,
			Group:         ref,
			Role:          role,
		},
	}

	if holderID := group.Holder(role); holderID != nil {
		current, err := s.users.GetByID(ctx, *holderID)
		if err != nil {
			return nil, fmt.Errorf("get current %s: %w", role, err)
		}
		n.Current = current
	}

	return n, nil
}

// Decide resolves a nomination on behalf of actor. On approval the requester
// takes the role on the requested group and loses it anywhere else; denial
// changes nothing.
func (s *Service) Decide(ctx context.Context, actor *User, req DelegateRequest, approve bool) (*Decision, error) {
	if err := s.authorize(ctx, actor); err != nil {
		return nil, err
	}

	requester, err := s.users.GetByTelegramID(ctx, req.RequesterTgID)
	if err != nil {
		return nil, fmt.Errorf("get requester: %w", err)
	}
	if requester == nil {
		return nil, ErrUserNotLinked
	}

	group, err := s.groups.GetByRef(ctx, req.Group)
	if err != nil {
		return nil, fmt.Errorf("get group %s: %w", req.Group, err)
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}

	if approve {
		if err := s.groups.AssignRole(ctx, group.ID, requester.ID, req.Role); err != nil {
			return nil, fmt.Errorf("assign %s: %w", req.Role, err)
		}
		id := requester.ID
		if req.Role == RoleDelegate {
			group.DelegateID = &id
		} else {
			group.SubdelegateID = &id
		}
	}

	return &Decision{
		Requester: requester,
		Group:     group,
		Role:      req.Role,
		Approved:  approve,
	}, nil
}
