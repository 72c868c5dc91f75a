// File: database/repository/provider/providerSlots.go
package providerRepo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// ClaimSlot atomically inserts slotTime into slotsBooked[slotDate].
//
// The membership check and the insert are a single conditional update: the
// filter only matches when the label is absent, so under concurrent claims
// of the same slot key exactly one update matches and every loser observes
// MatchedCount == 0. A missing date key matches the $ne filter and $push
// creates the array.
func (r *MongoProviderRepo) ClaimSlot(ctx context.Context, providerID, slotDate, slotTime string) error {
	field := "slotsBooked." + slotDate
	filter := bson.M{
		"id":  providerID,
		field: bson.M{"$ne": slotTime},
	}
	update := bson.M{"$push": bson.M{field: slotTime}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to claim slot %s %s for provider %s: %w", slotDate, slotTime, providerID, err)
	}
	if res.MatchedCount == 0 {
		return ErrSlotTaken
	}
	return nil
}

// ReleaseSlot removes slotTime from slotsBooked[slotDate]. The $pull is a
// single document update, atomic with respect to concurrent claims of the
// same slot.
func (r *MongoProviderRepo) ReleaseSlot(ctx context.Context, providerID, slotDate, slotTime string) error {
	field := "slotsBooked." + slotDate
	update := bson.M{"$pull": bson.M{field: slotTime}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": providerID}, update)
	if err != nil {
		return fmt.Errorf("failed to release slot %s %s for provider %s: %w", slotDate, slotTime, providerID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
