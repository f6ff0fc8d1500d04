package vectordb

import "github.com/VishnuVamsi7/DocReporter/internal/domain"

// databaseDTO is the on-disk shape of a vector database snapshot.
type databaseDTO struct {
	Model      string      `json:"model"`
	Dimensions int         `json:"dimensions"`
	Records    []recordDTO `json:"records"`
}

type recordDTO struct {
	ChunkID int       `json:"chunk_id"`
	Content string    `json:"content"`
	Vector  []float32 `json:"vector"`
	Pages   []int     `json:"pages,omitempty"`
}

func toDTO(vdb *domain.VectorDatabase) databaseDTO {
	records := make([]recordDTO, len(vdb.Records))
	for i, r := range vdb.Records {
		records[i] = recordDTO{
			ChunkID: r.ChunkID,
			Content: r.Content,
			Vector:  r.Vector,
			Pages:   r.Pages,
		}
	}
	return databaseDTO{
		Model:      vdb.Model,
		Dimensions: vdb.Dimensions,
		Records:    records,
	}
}

func (dto databaseDTO) toDomain() *domain.VectorDatabase {
	records := make([]domain.VectorRecord, len(dto.Records))
	for i, r := range dto.Records {
		records[i] = domain.VectorRecord{
			ChunkID: r.ChunkID,
			Content: r.Content,
			Vector:  r.Vector,
			Pages:   r.Pages,
		}
	}
	return &domain.VectorDatabase{
		Model:      dto.Model,
		Dimensions: dto.Dimensions,
		Records:    records,
	}
}
