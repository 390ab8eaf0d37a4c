package models

type Project struct {
	ID          int    `json:"id" bson:"id"`
	Name        string `json:"name" bson:"name"`
	Description string `json:"description" bson:"description"`
}

func (p Project) RecordID() int { return p.ID }

// ProjectPatch carries the supplied fields of a project request.
type ProjectPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (p ProjectPatch) NewRecord(id int) Project {
	return p.ApplyTo(Project{ID: id})
}

func (p ProjectPatch) ApplyTo(project Project) Project {
	if p.Name != nil {
		project.Name = *p.Name
	}
	if p.Description != nil {
		project.Description = *p.Description
	}
	return project
}
