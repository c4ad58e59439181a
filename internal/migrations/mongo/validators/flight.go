package validators

import "go.mongodb.org/mongo-driver/bson"

var FlightValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"number",
			"departure",
			"destination",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"number": bson.M{
				"bsonType":  "string",
				"minLength": 5,
				"maxLength": 5,
				"pattern":   "^[A-Za-z0-9]{5}$",
			},

			"departure": bson.M{
				"bsonType": "string",
				"pattern":  "^[A-Z]{3}$",
			},

			"destination": bson.M{
				"bsonType": "string",
				"pattern":  "^[A-Z]{3}$",
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
