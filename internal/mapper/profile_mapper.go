package mapper

import (
	"encoding/json"

	"matchchat-be/internal/entity"
	"matchchat-be/internal/model"

	"gorm.io/datatypes"
)

type ProfileMapper struct{}

func NewProfileMapper() *ProfileMapper {
	return &ProfileMapper{}
}

func tagsToJSON(tags []string) datatypes.JSON {
	if tags == nil {
		tags = []string{}
	}
	data, _ := json.Marshal(tags)
	return datatypes.JSON(data)
}

func tagsFromJSON(data datatypes.JSON) []string {
	var tags []string
	if len(data) > 0 {
		_ = json.Unmarshal(data, &tags)
	}
	if tags == nil {
		tags = []string{}
	}
	return tags
}

func (m *ProfileMapper) ToEntity(p *model.Profile) *entity.Profile {
	if p == nil {
		return nil
	}
	return &entity.Profile{
		Id:        p.Id,
		UserId:    p.UserId,
		Email:     p.Email,
		Name:      p.Name,
		Gender:    entity.Gender(p.Gender),
		Birthdate: p.Birthdate,
		Mbti:      p.Mbti,
		Bio:       p.Bio,
		Tags:      tagsFromJSON(p.Tags),
		LikeTags:  tagsFromJSON(p.LikeTags),
		ImageURL:  p.ImageURL,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (m *ProfileMapper) ToModel(p *entity.Profile) *model.Profile {
	if p == nil {
		return nil
	}
	return &model.Profile{
		Id:        p.Id,
		UserId:    p.UserId,
		Email:     p.Email,
		Name:      p.Name,
		Gender:    string(p.Gender),
		Birthdate: p.Birthdate,
		Mbti:      p.Mbti,
		Bio:       p.Bio,
		Tags:      tagsToJSON(p.Tags),
		LikeTags:  tagsToJSON(p.LikeTags),
		ImageURL:  p.ImageURL,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
