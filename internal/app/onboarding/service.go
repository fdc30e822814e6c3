package onboarding

import (
	"context"
	"errors"
	"sync"
	"unicode/utf8"

	"livechess/internal/domain"
	"livechess/internal/ports"
)

// Username length bounds: at least MinUsernameLen runes, strictly fewer
// than MaxUsernameLen.
const (
	MinUsernameLen = 4
	MaxUsernameLen = 15
)

// Colors is the fixed set of display colors an owner may register with.
var Colors = []string{"white", "black", "red", "blue", "green", "yellow", "orange", "purple"}

var (
	ErrUsernameLength = errors.New("username must be 4 to 14 characters")
	ErrUnknownColor   = errors.New("color is not in the allowed set")
)

// BoardDeployer is the slice of the sync engine onboarding needs: deploying
// a starter set and discovering which owners already hold pieces.
type BoardDeployer interface {
	RegisterOwner(ownerID int) error
	Owners() []int
}

// TokenMinter mints and verifies session tokens for owner ids.
type TokenMinter interface {
	Mint(ownerID int) (string, error)
	Verify(token string) (int, error)
}

// Service implements ports.OwnerDirectory: it validates registrations,
// allocates the two board sides in registration order, and maps session
// tokens back to owners.
type Service struct {
	deployer BoardDeployer
	tokens   TokenMinter

	mu      sync.Mutex
	owners  map[int]ports.Owner
	claimed map[int]bool // owner id -> side already holds pieces
}

// NewService constructs the directory. Sides already occupied on the board
// (a loaded snapshot) are marked claimed so re-registration cannot deploy a
// second starter set onto them.
func NewService(deployer BoardDeployer, tokens TokenMinter) *Service {
	s := &Service{
		deployer: deployer,
		tokens:   tokens,
		owners:   make(map[int]ports.Owner),
		claimed:  make(map[int]bool),
	}
	for _, id := range deployer.Owners() {
		s.claimed[id] = true
	}
	return s
}

// Register validates the profile, claims the next free side and deploys its
// starter set, then returns the owner and a signed session token.
func (s *Service) Register(ctx context.Context, username, color string) (ports.Owner, string, error) {
	if n := utf8.RuneCountInString(username); n < MinUsernameLen || n >= MaxUsernameLen {
		return ports.Owner{}, "", ErrUsernameLength
	}
	if !validColor(color) {
		return ports.Owner{}, "", ErrUnknownColor
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ownerID := 0
	for _, id := range []int{domain.OwnerBottom, domain.OwnerTop} {
		if !s.claimed[id] {
			ownerID = id
			break
		}
	}
	if ownerID == 0 {
		return ports.Owner{}, "", domain.ErrNoSideAvailable
	}

	if err := s.deployer.RegisterOwner(ownerID); err != nil {
		return ports.Owner{}, "", err
	}
	s.claimed[ownerID] = true

	owner := ports.Owner{ID: ownerID, Username: username, Color: color}
	s.owners[ownerID] = owner

	token, err := s.tokens.Mint(ownerID)
	if err != nil {
		return ports.Owner{}, "", err
	}
	return owner, token, nil
}

// Resolve verifies a session token and returns the owner it belongs to.
// After a restart the profile metadata may be gone while the side is still
// claimed on the loaded board; the bare owner id is still honored then.
func (s *Service) Resolve(ctx context.Context, token string) (ports.Owner, bool) {
	ownerID, err := s.tokens.Verify(token)
	if err != nil {
		return ports.Owner{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if owner, ok := s.owners[ownerID]; ok {
		return owner, true
	}
	if s.claimed[ownerID] {
		return ports.Owner{ID: ownerID}, true
	}
	return ports.Owner{}, false
}

func validColor(color string) bool {
	for _, c := range Colors {
		if c == color {
			return true
		}
	}
	return false
}

var _ ports.OwnerDirectory = (*Service)(nil)
