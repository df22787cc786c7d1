package dto

type SwipeRequest struct {
	TargetPetID int64 `json:"target_pet_id"`
	Liked       bool  `json:"liked"`
}

type SwipeResponse struct {
	OK           bool `json:"ok"`
	MatchCreated bool `json:"match_created"`
}
