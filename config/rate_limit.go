package config

import "time"

// Throttler names, one per route class.
const (
	LimitPublicRestaurants      = "public-restaurants"
	LimitPublicRestaurantDetail = "public-restaurant-detail"
	LimitPublicReviews          = "public-reviews"
	LimitAuthLogin              = "auth-login"
	LimitAuthRegister           = "auth-register"
	LimitUserReviews            = "user-reviews"
	LimitUserReviewActions      = "user-review-actions"
	LimitUserFavorites          = "user-favorites"
	LimitAdminSoft              = "admin-soft"
)

type RateRule struct {
	Window time.Duration
	Limit  int
}

var productionRateLimits = map[string]RateRule{
	LimitPublicRestaurants:      {Window: time.Minute, Limit: 60},
	LimitPublicRestaurantDetail: {Window: time.Minute, Limit: 120},
	LimitPublicReviews:          {Window: time.Minute, Limit: 60},
	LimitAuthLogin:              {Window: time.Minute, Limit: 5},
	LimitAuthRegister:           {Window: time.Minute, Limit: 3},
	LimitUserReviews:            {Window: time.Hour, Limit: 10},
	LimitUserReviewActions:      {Window: time.Hour, Limit: 30},
	LimitUserFavorites:          {Window: time.Minute, Limit: 60},
	LimitAdminSoft:              {Window: time.Minute, Limit: 1000},
}

// RateLimitsFor returns the throttling table for an environment. Test and
// development share a table with limits high enough to never trigger.
func RateLimitsFor(env string) map[string]RateRule {
	source := productionRateLimits
	relaxed := env == EnvTest || env == EnvDevelopment

	rules := make(map[string]RateRule, len(source))
	for name, rule := range source {
		if relaxed {
			rule.Limit = 10000
		}
		rules[name] = rule
	}
	return rules
}
