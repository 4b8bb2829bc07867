package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/forkful/backend/internal/models"
)

// SuggestionLimit caps the number of users returned by Suggestions.
const SuggestionLimit = 15

// SocialService maintains the follow and friend graphs. Both sides of an
// edge are stored denormalized on the two user documents; mutations here
// are two sequential writes with no transaction, so a crash between them
// can leave a one-sided edge. That weakness is accepted for this system.
type SocialService struct {
	db *gorm.DB
}

func NewSocialService(db *gorm.DB) *SocialService {
	return &SocialService{db: db}
}

// Follow adds target to actor's following list and actor to target's
// followers list. Idempotent: following an already-followed user changes
// nothing. Self-follow is rejected.
func (s *SocialService) Follow(ctx context.Context, actorID, targetID uuid.UUID) error {
	if actorID == targetID {
		return validation("You can't follow yourself.")
	}

	actor, target, err := s.loadPair(ctx, actorID, targetID)
	if err != nil {
		return err
	}

	if actor.Following.Add(target.ID.String()) {
		if err := s.db.WithContext(ctx).Save(actor).Error; err != nil {
			return err
		}
	}
	if target.Followers.Add(actor.ID.String()) {
		if err := s.db.WithContext(ctx).Save(target).Error; err != nil {
			return err
		}
	}
	return nil
}

// Unfollow removes both sides of the edge. Idempotent: unfollowing a user
// who was never followed is not an error.
func (s *SocialService) Unfollow(ctx context.Context, actorID, targetID uuid.UUID) error {
	if actorID == targetID {
		return validation("You can't unfollow yourself.")
	}

	actor, target, err := s.loadPair(ctx, actorID, targetID)
	if err != nil {
		return err
	}

	if actor.Following.Remove(target.ID.String()) {
		if err := s.db.WithContext(ctx).Save(actor).Error; err != nil {
			return err
		}
	}
	if target.Followers.Remove(actor.ID.String()) {
		if err := s.db.WithContext(ctx).Save(target).Error; err != nil {
			return err
		}
	}
	return nil
}

// SendFriendRequest records a pending inbound request on the recipient
// unless one is already pending or the two are already friends.
func (s *SocialService) SendFriendRequest(ctx context.Context, actorID, friendID uuid.UUID) error {
	if actorID == friendID {
		return validation("You can't send a friend request to yourself.")
	}

	_, recipient, err := s.loadPair(ctx, actorID, friendID)
	if err != nil {
		return err
	}

	actorKey := actorID.String()
	if recipient.FriendRequests.Contains(actorKey) || recipient.Friends.Contains(actorKey) {
		return validation("Already sent or already friends.")
	}

	recipient.FriendRequests.Add(actorKey)
	return s.db.WithContext(ctx).Save(recipient).Error
}

// AcceptFriendRequest removes the pending entry and makes the friendship
// mutual. Self-accept is rejected; a pending self-request can never exist,
// and without the check the actor would end up in their own friends list.
func (s *SocialService) AcceptFriendRequest(ctx context.Context, actorID, requesterID uuid.UUID) error {
	if actorID == requesterID {
		return validation("You can't accept your own friend request.")
	}

	actor, requester, err := s.loadPair(ctx, actorID, requesterID)
	if err != nil {
		return err
	}

	actor.FriendRequests.Remove(requester.ID.String())
	actor.Friends.Add(requester.ID.String())
	if err := s.db.WithContext(ctx).Save(actor).Error; err != nil {
		return err
	}

	if requester.Friends.Add(actor.ID.String()) {
		if err := s.db.WithContext(ctx).Save(requester).Error; err != nil {
			return err
		}
	}
	return nil
}

// DeclineFriendRequest drops the pending entry only.
func (s *SocialService) DeclineFriendRequest(ctx context.Context, actorID, requesterID uuid.UUID) error {
	actor, err := s.loadUser(ctx, actorID)
	if err != nil {
		return err
	}

	if actor.FriendRequests.Remove(requesterID.String()) {
		return s.db.WithContext(ctx).Save(actor).Error
	}
	return nil
}

// Suggestions returns users the actor might befriend: everyone except the
// actor, their friends and their pending requesters, capped at
// SuggestionLimit.
func (s *SocialService) Suggestions(ctx context.Context, actorID uuid.UUID) ([]models.UserSummary, error) {
	actor, err := s.loadUser(ctx, actorID)
	if err != nil {
		return nil, err
	}

	exclude := []uuid.UUID{actor.ID}
	exclude = append(exclude, parseIDs(actor.Friends)...)
	exclude = append(exclude, parseIDs(actor.FriendRequests)...)

	var users []models.User
	err = s.db.WithContext(ctx).
		Where("id NOT IN ?", exclude).
		Limit(SuggestionLimit).
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	return summarize(users), nil
}

// Requests lists the users behind the actor's pending inbound requests.
func (s *SocialService) Requests(ctx context.Context, actorID uuid.UUID) ([]models.UserSummary, error) {
	return s.resolveList(ctx, actorID, func(u *models.User) models.JSONBStringArray { return u.FriendRequests })
}

// Friends lists the actor's friends.
func (s *SocialService) Friends(ctx context.Context, actorID uuid.UUID) ([]models.UserSummary, error) {
	return s.resolveList(ctx, actorID, func(u *models.User) models.JSONBStringArray { return u.Friends })
}

// Following lists the users the actor follows.
func (s *SocialService) Following(ctx context.Context, actorID uuid.UUID) ([]models.UserSummary, error) {
	return s.resolveList(ctx, actorID, func(u *models.User) models.JSONBStringArray { return u.Following })
}

// Search matches users by name or email substring, excluding the actor.
// An empty query returns everyone else.
func (s *SocialService) Search(ctx context.Context, actorID uuid.UUID, query string) ([]models.UserSummary, error) {
	db := s.db.WithContext(ctx).Where("id <> ?", actorID)

	if query = strings.TrimSpace(query); query != "" {
		like := "%" + strings.ToLower(query) + "%"
		db = db.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}

	var users []models.User
	if err := db.Find(&users).Error; err != nil {
		return nil, err
	}
	return summarize(users), nil
}

func (s *SocialService) loadUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *SocialService) loadPair(ctx context.Context, actorID, otherID uuid.UUID) (*models.User, *models.User, error) {
	actor, err := s.loadUser(ctx, actorID)
	if err != nil {
		return nil, nil, err
	}
	other, err := s.loadUser(ctx, otherID)
	if err != nil {
		return nil, nil, err
	}
	return actor, other, nil
}

// resolveList turns one of the actor's ID arrays into user summaries,
// preserving the stored order. IDs that no longer resolve are skipped.
func (s *SocialService) resolveList(ctx context.Context, actorID uuid.UUID, pick func(*models.User) models.JSONBStringArray) ([]models.UserSummary, error) {
	actor, err := s.loadUser(ctx, actorID)
	if err != nil {
		return nil, err
	}

	ids := parseIDs(pick(actor))
	if len(ids) == 0 {
		return []models.UserSummary{}, nil
	}

	var users []models.User
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*models.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}

	summaries := make([]models.UserSummary, 0, len(ids))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			summaries = append(summaries, u.Summary())
		}
	}
	return summaries, nil
}

func parseIDs(raw models.JSONBStringArray) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		if id, err := uuid.Parse(s); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

func summarize(users []models.User) []models.UserSummary {
	summaries := make([]models.UserSummary, 0, len(users))
	for i := range users {
		summaries = append(summaries, users[i].Summary())
	}
	return summaries
}
