// services/group_service.go - Read-side lookups for the preference chart
package services

import (
	"context"
	"errors"
	"time"

	"biasboard/cache"
	"biasboard/models"

	"gorm.io/gorm"
)

// GroupResponse is the projection served to the preference chart.
type GroupResponse struct {
	Name      string           `json:"name"`
	Logo      string           `json:"logo"`
	Ticker    string           `json:"ticker"`
	GroupType models.GroupType `json:"groupType"`
}

type MemberResponse struct {
	Name         string `json:"name"`
	ProfileImage string `json:"profileImage"`
}

// groupTypeFilter maps the chart's (type, gender) pair onto the stored enum.
// A pair outside the map means no filter.
var groupTypeFilter = map[string]map[string]models.GroupType{
	"group": {
		"boy":  models.GroupTypeBoyGroup,
		"girl": models.GroupTypeGirlGroup,
		"coed": models.GroupTypeCoedGroup,
	},
	"solo": {
		"boy":  models.GroupTypeMaleSolo,
		"girl": models.GroupTypeFemaleSolo,
	},
}

// listGroupsCacheKey collapses every unmapped (type, gender) pair onto one
// key. They all serve the unfiltered list, and a per-pair key would let
// callers allocate an unbounded number of entries holding the same result.
func listGroupsCacheKey(groupKind, gender string) string {
	if _, ok := groupTypeFilter[groupKind][gender]; !ok {
		return "groups:all"
	}
	return "groups:" + groupKind + ":" + gender
}

// GroupService serves read-only lookups over the live tables, with a
// cache-aside layer in front. All queries see the storage backend's
// read-after-write state; the cache is invalidated on approval.
type GroupService struct {
	db      *gorm.DB
	timeout time.Duration
	ttl     time.Duration
}

func NewGroupService(db *gorm.DB, storageTimeout, cacheTTL time.Duration) *GroupService {
	return &GroupService{db: db, timeout: storageTimeout, ttl: cacheTTL}
}

// ListGroups returns live teams sorted by name, filtered by the (type, gender)
// mapping when it applies.
func (s *GroupService) ListGroups(ctx context.Context, groupKind, gender string) ([]GroupResponse, error) {
	gt, filtered := groupTypeFilter[groupKind][gender]
	key := listGroupsCacheKey(groupKind, gender)

	var cached []GroupResponse
	if found, err := cache.GetJSON(ctx, key, &cached); err == nil && found {
		return cached, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	query := s.db.WithContext(ctx).Model(&models.Team{})
	if filtered {
		query = query.Where("group_type = ?", gt)
	}

	var teams []models.Team
	if err := query.Order("name ASC").Find(&teams).Error; err != nil {
		return nil, err
	}

	out := make([]GroupResponse, len(teams))
	for i, t := range teams {
		out[i] = GroupResponse{Name: t.Name, Logo: t.Logo, Ticker: t.Ticker, GroupType: t.GroupType}
	}

	_ = cache.SetJSON(ctx, key, out, s.ttl)
	return out, nil
}

// GetGroup fetches one live team by ticker.
func (s *GroupService) GetGroup(ctx context.Context, teamTicker string) (*GroupResponse, error) {
	key := "group:" + teamTicker

	var cached GroupResponse
	if found, err := cache.GetJSON(ctx, key, &cached); err == nil && found {
		return &cached, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var team models.Team
	err := s.db.WithContext(ctx).Where("ticker = ?", teamTicker).First(&team).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrTeamNotFound
	}
	if err != nil {
		return nil, err
	}

	out := &GroupResponse{Name: team.Name, Logo: team.Logo, Ticker: team.Ticker, GroupType: team.GroupType}
	_ = cache.SetJSON(ctx, key, out, s.ttl)
	return out, nil
}

// ListMembers returns the members of a live team sorted by name, keeping only
// rows where both the name and the profile image are present. The chart has
// nothing to render for a member missing either.
func (s *GroupService) ListMembers(ctx context.Context, teamTicker string) ([]MemberResponse, error) {
	key := "members:" + teamTicker

	var cached []MemberResponse
	if found, err := cache.GetJSON(ctx, key, &cached); err == nil && found {
		return cached, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	db := s.db.WithContext(ctx)

	var team models.Team
	err := db.Where("ticker = ?", teamTicker).First(&team).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrTeamNotFound
	}
	if err != nil {
		return nil, err
	}

	var members []models.ArtistMember
	if err := db.Where("team_id = ?", team.ID).Order("name ASC").Find(&members).Error; err != nil {
		return nil, err
	}

	out := make([]MemberResponse, 0, len(members))
	for _, m := range members {
		if m.Name == "" || m.ProfileImage == "" {
			continue
		}
		out = append(out, MemberResponse{Name: m.Name, ProfileImage: m.ProfileImage})
	}

	_ = cache.SetJSON(ctx, key, out, s.ttl)
	return out, nil
}
