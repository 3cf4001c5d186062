package domain

import "time"

// Category is the closed set of gallery categories an image can belong to.
type Category string

const (
	CategoryFeatured      Category = "FEATURED"
	CategoryWedding       Category = "WEDDING"
	CategoryPreWedding    Category = "PRE-WEDDING"
	CategoryCandid        Category = "CANDID"
	CategoryBaby          Category = "BABY"
	CategoryBabyShower    Category = "BABYSHOWER"
	CategoryHaldi         Category = "HALDI"
	CategoryHalfSaree     Category = "HALFSAREE"
	CategoryBlackAndWhite Category = "BLACK & WHITE"
	CategoryCouple        Category = "COUPLE"
	CategoryPortrait      Category = "PORTRAIT"
	CategoryEvent         Category = "EVENT"
)

// AllCategories lists every valid category, in display order.
var AllCategories = []Category{
	CategoryFeatured,
	CategoryWedding,
	CategoryPreWedding,
	CategoryCandid,
	CategoryBaby,
	CategoryBabyShower,
	CategoryHaldi,
	CategoryHalfSaree,
	CategoryBlackAndWhite,
	CategoryCouple,
	CategoryPortrait,
	CategoryEvent,
}

// ParseCategory validates a raw string against the closed category set.
func ParseCategory(s string) (Category, error) {
	for _, c := range AllCategories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", ErrInvalidCategory
}

// Orientation describes the aspect class of an image.
type Orientation string

const (
	OrientationPortrait  Orientation = "portrait"
	OrientationLandscape Orientation = "landscape"
	OrientationSquare    Orientation = "square"
)

// ParseOrientation validates a raw string against the closed orientation set.
func ParseOrientation(s string) (Orientation, error) {
	switch Orientation(s) {
	case OrientationPortrait, OrientationLandscape, OrientationSquare:
		return Orientation(s), nil
	}
	return "", ErrInvalidOrientation
}

// UploadMethod records how an image entered the system.
type UploadMethod string

const (
	UploadMethodFile UploadMethod = "file"
	UploadMethodURL  UploadMethod = "url"
)

// Image is the persisted metadata for one gallery image. ImageURL and MediaID
// always refer to the same object on the media host: a record is only written
// after the remote upload succeeded, and is only removed together with the
// remote object.
type Image struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	ImageURL     string       `json:"imageUrl"`
	MediaID      string       `json:"mediaId"`
	Category     Category     `json:"category"`
	Orientation  Orientation  `json:"orientation"`
	UploadMethod UploadMethod `json:"uploadMethod"`
	UploadedAt   time.Time    `json:"uploadedAt"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}
