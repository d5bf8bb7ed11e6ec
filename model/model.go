// Package model defines the catalog entities and the join models backing
// their many-to-many relations. All entities are identified by an opaque
// UUID string assigned on first save.
package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/uptrace/bun"
)

// MaxStars is the Michelin ceiling: a restaurant never holds more than
// three stars at any committed state.
const MaxStars = 3

// Culture is the central entity of the catalog. It owns countries and
// restaurants through join tables, and products and recipes through
// foreign keys on the child side.
type Culture struct {
	bun.BaseModel `bun:"table:cultures,alias:cu" json:"-" msgpack:"-"`

	ID          string `bun:"id,pk" json:"id"`
	Name        string `bun:"name,notnull" json:"name"`
	Description string `bun:"description" json:"description"`

	Countries   []*Country    `bun:"m2m:culture_countries,join:Culture=Country" json:"countries,omitempty"`
	Products    []*Product    `bun:"rel:has-many,join:id=culture_id" json:"products,omitempty"`
	Restaurants []*Restaurant `bun:"m2m:culture_restaurants,join:Culture=Restaurant" json:"restaurants,omitempty"`
	Recipes     []*Recipe     `bun:"rel:has-many,join:id=culture_id" json:"recipes,omitempty"`
}

// Validate checks the fields a caller must supply on create/update.
func (c *Culture) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&c.Description, validation.Required),
	)
}

// Country participates in the symmetric culture<->country relation and
// owns restaurants via the restaurant's country foreign key.
type Country struct {
	bun.BaseModel `bun:"table:countries,alias:co" json:"-" msgpack:"-"`

	ID   string `bun:"id,pk" json:"id"`
	Name string `bun:"name,notnull" json:"name"`

	Cultures    []*Culture    `bun:"m2m:culture_countries,join:Country=Culture" json:"cultures,omitempty"`
	Restaurants []*Restaurant `bun:"rel:has-many,join:id=country_id" json:"restaurants,omitempty"`
}

func (c *Country) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Name, validation.Required, validation.Length(1, 255)),
	)
}

// Product belongs to at most one category and at most one culture.
type Product struct {
	bun.BaseModel `bun:"table:products,alias:pr" json:"-" msgpack:"-"`

	ID          string `bun:"id,pk" json:"id"`
	Name        string `bun:"name,notnull" json:"name"`
	Description string `bun:"description" json:"description"`
	History     string `bun:"history" json:"history"`

	CategoryID *string   `bun:"category_id" json:"categoryId,omitempty"`
	Category   *Category `bun:"rel:belongs-to,join:category_id=id" json:"category,omitempty"`
	CultureID  *string   `bun:"culture_id" json:"cultureId,omitempty"`
	Culture    *Culture  `bun:"rel:belongs-to,join:culture_id=id" json:"culture,omitempty"`
}

func (p *Product) Validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&p.Description, validation.Required),
		validation.Field(&p.History, validation.Required),
	)
}

// Category groups products.
type Category struct {
	bun.BaseModel `bun:"table:categories,alias:ca" json:"-" msgpack:"-"`

	ID   string `bun:"id,pk" json:"id"`
	Name string `bun:"name,notnull" json:"name"`

	Products []*Product `bun:"rel:has-many,join:id=category_id" json:"products,omitempty"`
}

func (c *Category) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Name, validation.Required, validation.Length(1, 255)),
	)
}

// Recipe belongs to at most one culture.
type Recipe struct {
	bun.BaseModel `bun:"table:recipes,alias:re" json:"-" msgpack:"-"`

	ID          string `bun:"id,pk" json:"id"`
	Name        string `bun:"name,notnull" json:"name"`
	Description string `bun:"description" json:"description"`
	PhotoURI    string `bun:"photo_uri" json:"photoUri"`
	VideoURI    string `bun:"video_uri" json:"videoUri"`
	Preparation string `bun:"preparation" json:"preparation"`

	CultureID *string  `bun:"culture_id" json:"cultureId,omitempty"`
	Culture   *Culture `bun:"rel:belongs-to,join:culture_id=id" json:"culture,omitempty"`
}

func (r *Recipe) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Description, validation.Required),
	)
}

// Restaurant belongs to at most one country, participates in the
// culture<->restaurant relation and owns up to MaxStars stars.
type Restaurant struct {
	bun.BaseModel `bun:"table:restaurants,alias:rs" json:"-" msgpack:"-"`

	ID   string `bun:"id,pk" json:"id"`
	Name string `bun:"name,notnull" json:"name"`
	City string `bun:"city" json:"city"`

	Stars     []*Star    `bun:"rel:has-many,join:id=restaurant_id" json:"stars,omitempty"`
	Cultures  []*Culture `bun:"m2m:culture_restaurants,join:Restaurant=Culture" json:"cultures,omitempty"`
	CountryID *string    `bun:"country_id" json:"countryId,omitempty"`
	Country   *Country   `bun:"rel:belongs-to,join:country_id=id" json:"country,omitempty"`
}

func (r *Restaurant) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.City, validation.Required),
	)
}

// Star records a single Michelin rating with the date it was awarded.
type Star struct {
	bun.BaseModel `bun:"table:stars,alias:st" json:"-" msgpack:"-"`

	ID              string    `bun:"id,pk" json:"id"`
	ConsecutionDate time.Time `bun:"consecution_date,notnull" json:"consecutionDate"`

	RestaurantID *string     `bun:"restaurant_id" json:"restaurantId,omitempty"`
	Restaurant   *Restaurant `bun:"rel:belongs-to,join:restaurant_id=id" json:"restaurant,omitempty"`
}

func (s *Star) Validate() error {
	return validation.ValidateStruct(s,
		validation.Field(&s.ConsecutionDate, validation.Required),
	)
}

// CultureCountry is the edge set behind the culture<->country relation.
// Both named views (culture.Countries and country.Cultures) read the same
// rows, and the composite primary key rules out duplicate edges.
type CultureCountry struct {
	bun.BaseModel `bun:"table:culture_countries,alias:ccn" json:"-" msgpack:"-"`

	CultureID string   `bun:"culture_id,pk" json:"cultureId"`
	Culture   *Culture `bun:"rel:belongs-to,join:culture_id=id" json:"-"`
	CountryID string   `bun:"country_id,pk" json:"countryId"`
	Country   *Country `bun:"rel:belongs-to,join:country_id=id" json:"-"`
}

// CultureRestaurant is the edge set behind the culture<->restaurant relation.
type CultureRestaurant struct {
	bun.BaseModel `bun:"table:culture_restaurants,alias:crs" json:"-" msgpack:"-"`

	CultureID    string      `bun:"culture_id,pk" json:"cultureId"`
	Culture      *Culture    `bun:"rel:belongs-to,join:culture_id=id" json:"-"`
	RestaurantID string      `bun:"restaurant_id,pk" json:"restaurantId"`
	Restaurant   *Restaurant `bun:"rel:belongs-to,join:restaurant_id=id" json:"-"`
}
