package store

import (
	"database/sql"
	"fmt"
	"time"
)

// SaveDataset persists one built partition in a single transaction: any
// existing data for the partition is replaced, the dataset record inserted,
// and every feature row written in matrix order. labels must be nil for
// inference datasets and row-parallel to features otherwise. Nothing is
// persisted if any step fails.
func (s *Store) SaveDataset(ds *Dataset, features [][]float64, labels []int) (int64, error) {
	if labels != nil && len(labels) != len(features) {
		return 0, fmt.Errorf("label count %d does not equal feature row count %d", len(labels), len(features))
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := deletePartitionTx(tx, ds.Partition); err != nil {
		return 0, err
	}

	createdAt := ds.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	res, err := tx.Exec(
		`INSERT INTO datasets (partition, mode, sentence_count, corrected_sentences, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		ds.Partition, ds.Mode, ds.SentenceCount, ds.CorrectedSentences, createdAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert dataset: %w", err)
	}
	datasetID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("dataset id: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO feature_rows (dataset_id, ordinal, det_embedding, noun_embedding, distance, histogram, label)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return 0, fmt.Errorf("prepare feature insert: %w", err)
	}
	defer stmt.Close()

	for i, row := range features {
		if len(row) < 3 {
			return 0, fmt.Errorf("feature row %d has %d columns, need at least 3", i, len(row))
		}
		var label any
		if labels != nil {
			label = labels[i]
		}
		if _, err := stmt.Exec(datasetID, i, row[0], row[1], row[2], marshalHistogram(row[3:]), label); err != nil {
			return 0, fmt.Errorf("insert feature row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit dataset: %w", err)
	}
	ds.ID = datasetID
	return datasetID, nil
}

// DatasetByPartition returns the dataset record for a partition, or nil if
// the partition has not been built.
func (s *Store) DatasetByPartition(partition string) (*Dataset, error) {
	ds := &Dataset{}
	err := s.db.QueryRow(
		`SELECT id, partition, mode, sentence_count, corrected_sentences, created_at
		 FROM datasets WHERE partition = ?`, partition,
	).Scan(&ds.ID, &ds.Partition, &ds.Mode, &ds.SentenceCount, &ds.CorrectedSentences, &ds.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query dataset: %w", err)
	}
	return ds, nil
}

// FeatureRows returns a dataset's rows in matrix order.
func (s *Store) FeatureRows(datasetID int64) ([]*FeatureRow, error) {
	rows, err := s.db.Query(
		`SELECT id, dataset_id, ordinal, det_embedding, noun_embedding, distance, histogram, label
		 FROM feature_rows WHERE dataset_id = ? ORDER BY ordinal`, datasetID,
	)
	if err != nil {
		return nil, fmt.Errorf("query feature rows: %w", err)
	}
	defer rows.Close()

	var result []*FeatureRow
	for rows.Next() {
		fr := &FeatureRow{}
		var hist string
		var label sql.NullInt64
		if err := rows.Scan(&fr.ID, &fr.DatasetID, &fr.Ordinal, &fr.DetEmbedding, &fr.NounEmbedding, &fr.Distance, &hist, &label); err != nil {
			return nil, fmt.Errorf("scan feature row: %w", err)
		}
		fr.Histogram = unmarshalHistogram(hist)
		if label.Valid {
			v := int(label.Int64)
			fr.Label = &v
		}
		result = append(result, fr)
	}
	return result, rows.Err()
}

// FeatureMatrix reconstructs a dataset's feature matrix in matrix order.
func (s *Store) FeatureMatrix(datasetID int64) ([][]float64, error) {
	frs, err := s.FeatureRows(datasetID)
	if err != nil {
		return nil, err
	}
	matrix := make([][]float64, 0, len(frs))
	for _, fr := range frs {
		row := make([]float64, 0, 3+len(fr.Histogram))
		row = append(row, fr.DetEmbedding, fr.NounEmbedding, fr.Distance)
		row = append(row, fr.Histogram...)
		matrix = append(matrix, row)
	}
	return matrix, nil
}

// Labels reconstructs a training dataset's label vector in matrix order.
// Returns nil for an inference dataset (no stored labels).
func (s *Store) Labels(datasetID int64) ([]int, error) {
	frs, err := s.FeatureRows(datasetID)
	if err != nil {
		return nil, err
	}
	var labels []int
	for _, fr := range frs {
		if fr.Label == nil {
			return nil, nil
		}
		labels = append(labels, *fr.Label)
	}
	return labels, nil
}

// SavePredictions replaces a dataset's decoded prediction slots in a single
// transaction.
func (s *Store) SavePredictions(datasetID int64, preds []*PredictionRow) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM predictions WHERE dataset_id = ?", datasetID); err != nil {
		return fmt.Errorf("delete old predictions: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO predictions (dataset_id, sentence_index, site_index, class, confidence)
		 VALUES (?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("prepare prediction insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range preds {
		if _, err := stmt.Exec(datasetID, p.SentenceIndex, p.SiteIndex, p.Class, p.Confidence); err != nil {
			return fmt.Errorf("insert prediction (%d,%d): %w", p.SentenceIndex, p.SiteIndex, err)
		}
	}
	return tx.Commit()
}

// Predictions returns a dataset's prediction slots ordered by sentence and
// site.
func (s *Store) Predictions(datasetID int64) ([]*PredictionRow, error) {
	rows, err := s.db.Query(
		`SELECT id, dataset_id, sentence_index, site_index, class, confidence
		 FROM predictions WHERE dataset_id = ? ORDER BY sentence_index, site_index`, datasetID,
	)
	if err != nil {
		return nil, fmt.Errorf("query predictions: %w", err)
	}
	defer rows.Close()

	var result []*PredictionRow
	for rows.Next() {
		p := &PredictionRow{}
		if err := rows.Scan(&p.ID, &p.DatasetID, &p.SentenceIndex, &p.SiteIndex, &p.Class, &p.Confidence); err != nil {
			return nil, fmt.Errorf("scan prediction: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}
